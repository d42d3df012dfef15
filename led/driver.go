package led

import (
	"fmt"
	"log/slog"
)

// DriverConfig selects and configures a Driver.
type DriverConfig struct {
	// Kind is one of memory, serial, artnet or ws281x.
	Kind       string
	SerialPort string
	BaudRate   int
	ArtNetHost string
	Universe   int
	GPIOPin    int
	NumLEDs    int
}

func Open(cfg DriverConfig) (Driver, error) {
	slog.Info("Opening LED driver", "kind", cfg.Kind)

	switch cfg.Kind {
	case "memory", "none", "":
		return NewMemory(), nil
	case "serial":
		port := cfg.SerialPort
		if port == "" {
			ports, err := AvailablePorts()
			if err != nil {
				return nil, err
			}

			if len(ports) == 0 || !LooksLikeController(ports[0]) {
				return nil, fmt.Errorf("no serial port given and no LED controller found among %v", ports)
			}

			port = ports[0]
			slog.Info("Using detected serial port", "path", port)
		}

		return OpenSerial(port, cfg.BaudRate)
	case "artnet":
		return DialArtNet(cfg.ArtNetHost, cfg.Universe)
	case "ws281x":
		return openWS281x(cfg.GPIOPin, cfg.NumLEDs)
	default:
		return nil, fmt.Errorf("unknown led driver %q", cfg.Kind)
	}
}
