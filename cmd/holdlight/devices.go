package holdlight

import (
	"fmt"

	"github.com/dasdy/holdlight/led"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List serial ports that could drive the LEDs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ports, err := led.AvailablePorts()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(ports) == 0 {
			fmt.Fprintln(out, "No serial ports found")

			return nil
		}

		likely := color.New(color.FgGreen)

		for _, p := range ports {
			if led.LooksLikeController(p) {
				fmt.Fprintln(out, likely.Sprint(p+"  (looks like an LED controller)"))
			} else {
				fmt.Fprintln(out, p)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
