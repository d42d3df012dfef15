package holdlight

import (
	"fmt"

	"github.com/dasdy/holdlight/db"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved boulders",
	RunE: func(cmd *cobra.Command, _ []string) error {
		storage, err := db.Open(cmd.Context(), cfg.StorePath)
		if err != nil {
			return err
		}
		defer storage.Close()

		boulders, err := storage.List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(boulders) == 0 {
			fmt.Fprintf(out, "No boulders in %s\n", cfg.StorePath)

			return nil
		}

		name := color.New(color.FgGreen, color.Bold)
		grade := color.New(color.FgYellow)

		for _, b := range boulders {
			boulder, err := storage.Load(cmd.Context(), b.Name)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s  %s  %d holds\n", name.Sprint(b.Name), grade.Sprint(b.Difficulty), boulder.MarkedHolds())
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
