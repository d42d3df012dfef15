package holdlight

import (
	"context"
	"log/slog"
	"time"

	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/settings"
	"github.com/spf13/cobra"
)

var rainbowHold time.Duration

var rainbowCmd = &cobra.Command{
	Use:   "rainbow",
	Short: "Show the rainbow test pattern and exit",
	Long: `Lights every LED of the grid with a diagonal rainbow. Useful to check the
strip wiring and the configured orientation.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		driver, err := cfg.openDriver()
		if err != nil {
			return err
		}

		strip, err := cfg.strip(driver)
		if err != nil {
			return err
		}
		defer strip.Close()

		s, err := settings.Load(cfg.Settings)
		if err != nil {
			return err
		}

		if err := strip.SetBrightness(s.Brightness()); err != nil {
			return err
		}

		if err := strip.Render(compositor.Rainbow(cfg.ledRows(), cfg.ledCols())); err != nil {
			return err
		}

		slog.Info("Showing rainbow", "for", rainbowHold)

		ctx, cancel := context.WithTimeout(cmd.Context(), rainbowHold)
		defer cancel()

		<-ctx.Done()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(rainbowCmd)

	rainbowCmd.Flags().DurationVar(&rainbowHold, "hold", 5*time.Second, "How long to keep the pattern before exiting")
}
