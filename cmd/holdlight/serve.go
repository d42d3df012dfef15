package holdlight

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/dasdy/holdlight/events"
	"github.com/dasdy/holdlight/web"
	"github.com/spf13/cobra"
)

var (
	host        string
	port        int
	skipRainbow bool
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web interface and drive the LEDs",
	Long: `Starts the LED driver, shows a rainbow until the page is first opened,
and serves the hold editor together with a JSON API, an event stream and metrics.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		driver, err := cfg.openDriver()
		if err != nil {
			return err
		}

		bus := events.New()

		w, err := cfg.openWall(ctx, driver, bus)
		if err != nil {
			return err
		}
		defer w.Close()

		if !skipRainbow {
			if err := w.Rainbow(ctx); err != nil {
				slog.Warn("Could not show startup rainbow", "error", err)
			}
		}

		if err := w.WatchSettings(ctx); err != nil {
			slog.Warn("Settings file will not be watched", "error", err)
		}

		handler := web.BuildServer(web.Options{Wall: w, Bus: bus, Version: Version})

		return web.StartServer(ctx, fmt.Sprintf("%s:%d", host, port), handler, func(_ net.Addr) {
			sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
			if err != nil {
				slog.Warn("Could not notify systemd", "error", err)
			} else if sent {
				slog.Debug("Notified systemd that the service is ready")
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "Address to listen on")
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port on which server should be watching")
	serveCmd.Flags().BoolVar(&skipRainbow, "no-rainbow", false, "Do not show the rainbow on startup")
}
