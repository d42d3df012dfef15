package holdlight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/db"
	"github.com/dasdy/holdlight/events"
	"github.com/dasdy/holdlight/grid"
	"github.com/dasdy/holdlight/led"
	"github.com/dasdy/holdlight/model"
	"github.com/dasdy/holdlight/settings"
	"github.com/dasdy/holdlight/wall"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// wallConfig collects the flags every command that touches the wall shares.
type wallConfig struct {
	Rows        int
	Cols        int
	NumLEDs     int
	States      string
	Compositor  string
	ReverseRows bool
	ReverseCols bool
	SwapAxes    bool
	Orientation string
	Alternating bool
	Offset      int
	Driver      led.DriverConfig
	StorePath   string
	Settings    string
}

var cfg wallConfig

func addWallFlags(flags *pflag.FlagSet) {
	flags.IntVar(&cfg.Rows, "rows", 12, "Hold rows on the wall")
	flags.IntVar(&cfg.Cols, "cols", 7, "Hold columns on the wall")
	flags.IntVar(&cfg.NumLEDs, "num-leds", 100, "LEDs on the strip")
	flags.StringVar(&cfg.States, "states", "classic", "Hold state table: classic or compact")
	flags.StringVar(&cfg.Compositor, "compositor", compositor.ModeBlend, "How holds become LED colours: blend or direct")
	flags.BoolVar(&cfg.ReverseRows, "reverse-rows", true, "Strip wiring: LED row 0 is at the far end of the strip")
	flags.BoolVar(&cfg.ReverseCols, "reverse-cols", true, "Strip wiring: LED column 0 is at the far end of the strip")
	flags.BoolVar(&cfg.SwapAxes, "swap-axes", false, "Direct mode: light hold (r, c) on LED (c, r)")
	flags.StringVar(&cfg.Orientation, "orientation", string(led.Vertical), "Strip wiring: vertical or horizontal")
	flags.BoolVar(&cfg.Alternating, "alternating", false, "Strip snakes back on every other run")
	flags.IntVar(&cfg.Offset, "offset", 0, "Strip index of the first grid LED")

	flags.StringVar(&cfg.Driver.Kind, "driver", "memory", "LED driver: memory, serial, artnet or ws281x")
	flags.StringVar(&cfg.Driver.SerialPort, "serial-port", "", "Adalight serial port, detected when empty")
	flags.IntVar(&cfg.Driver.BaudRate, "baud", 115200, "Adalight baud rate")
	flags.StringVar(&cfg.Driver.ArtNetHost, "artnet-host", "", "Art-Net node address, host or host:port")
	flags.IntVar(&cfg.Driver.Universe, "universe", 0, "First Art-Net universe")
	flags.IntVar(&cfg.Driver.GPIOPin, "gpio-pin", 18, "ws281x data pin")

	flags.StringVarP(&cfg.StorePath, "store", "s", "boulders.yml", "Boulder store: a .yml/.toml/.json file, a .db file, sqlite:// or redis://")
	flags.StringVar(&cfg.Settings, "settings", "settings.toml", "Brightness settings file")
}

// LED grid is one column wider than the hold grid so that every hold has an
// LED on both sides.
func (c wallConfig) ledRows() int { return c.Rows }

func (c wallConfig) ledCols() int { return c.Cols + 1 }

func (c wallConfig) layout() led.Layout {
	return led.Layout{
		Orientation: led.Orientation(c.Orientation),
		Rows:        c.ledRows(),
		Cols:        c.ledCols(),
		Alternating: c.Alternating,
		Offset:      c.Offset,
		ReverseRows: c.ReverseRows,
		ReverseCols: c.ReverseCols,
	}
}

func (c wallConfig) compositor() (compositor.Compositor, error) {
	opts := compositor.Options{
		LEDRows: c.ledRows(),
		LEDCols: c.ledCols(),
		// Reversal is applied by the strip layout, for both modes.
		Transform: compositor.Transform{SwapAxes: c.SwapAxes},
	}

	if viper.IsSet("rowtints") {
		if err := viper.UnmarshalKey("rowtints", &opts.RowTints); err != nil {
			return nil, fmt.Errorf("invalid rowtints in config: %w", err)
		}
	}

	if viper.IsSet("coltints") {
		if err := viper.UnmarshalKey("coltints", &opts.ColTints); err != nil {
			return nil, fmt.Errorf("invalid coltints in config: %w", err)
		}
	}

	return compositor.New(c.Compositor, opts)
}

func (c wallConfig) strip(driver led.Driver) (*led.Strip, error) {
	strip, err := led.NewStrip(driver, c.NumLEDs, c.layout())
	if err != nil {
		driver.Close()

		return nil, fmt.Errorf("led layout does not fit the strip: %w", err)
	}

	return strip, nil
}

// openWall builds every part of the wall from flags. It takes ownership of
// driver; the caller closes the wall.
func (c wallConfig) openWall(ctx context.Context, driver led.Driver, bus *events.Bus) (*wall.Wall, error) {
	states, err := model.StateTableByName(c.States)
	if err != nil {
		driver.Close()

		return nil, err
	}

	comp, err := c.compositor()
	if err != nil {
		driver.Close()

		return nil, err
	}

	strip, err := c.strip(driver)
	if err != nil {
		return nil, err
	}

	storage, err := db.Open(ctx, c.StorePath)
	if err != nil {
		strip.Close()

		return nil, fmt.Errorf("could not open boulder store %s: %w", c.StorePath, err)
	}

	s, err := settings.Load(c.Settings)
	if err != nil {
		strip.Close()
		storage.Close()

		return nil, err
	}

	slog.Info("Wall configured",
		"rows", c.Rows, "cols", c.Cols,
		"compositor", comp.Name(),
		"states", c.States,
		"store", c.StorePath)

	w, err := wall.New(wall.Options{
		Grid:       grid.New(c.Rows, c.Cols, states),
		Compositor: comp,
		Strip:      strip,
		Storage:    storage,
		Settings:   s,
		Bus:        bus,
	})
	if err != nil {
		strip.Close()
		storage.Close()

		return nil, err
	}

	return w, nil
}

func (c wallConfig) openDriver() (led.Driver, error) {
	d := c.Driver
	d.NumLEDs = c.NumLEDs

	driver, err := led.Open(d)
	if err != nil {
		return nil, fmt.Errorf("could not open led driver %q: %w", d.Kind, err)
	}

	return driver, nil
}
