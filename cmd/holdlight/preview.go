package holdlight

import (
	"fmt"
	"io"

	"github.com/dasdy/holdlight/compositor"
	"github.com/dasdy/holdlight/db"
	"github.com/dasdy/holdlight/grid"
	"github.com/dasdy/holdlight/model"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <boulder>",
	Short: "Print the LED colours of a saved boulder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		states, err := model.StateTableByName(cfg.States)
		if err != nil {
			return err
		}

		comp, err := cfg.compositor()
		if err != nil {
			return err
		}

		storage, err := db.Open(cmd.Context(), cfg.StorePath)
		if err != nil {
			return err
		}
		defer storage.Close()

		boulder, err := storage.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		g := grid.New(cfg.Rows, cfg.Cols, states)
		if err := g.Replace(boulder.Holds); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s), %d holds\n\n", args[0], boulder.Difficulty, boulder.MarkedHolds())
		printHolds(out, g)
		fmt.Fprintln(out)
		printFrame(out, comp.Compose(g))

		return nil
	},
}

// printHolds writes one letter per hold, coloured with the state colour.
func printHolds(w io.Writer, g *grid.Grid) {
	states := g.States()

	for r := range g.Rows() {
		for c := range g.Cols() {
			v, _ := g.Get(r, c)
			if v == 0 {
				fmt.Fprint(w, " . ")

				continue
			}

			rgb := states.Color(v)
			label := color.RGB(int(rgb.R), int(rgb.G), int(rgb.B)).Sprint(states.Name(v)[:1])
			fmt.Fprintf(w, " %s ", label)
		}

		fmt.Fprintln(w)
	}
}

// printFrame draws every LED as a coloured block.
func printFrame(w io.Writer, frame compositor.Frame) {
	for r := range frame.Rows() {
		for c := range frame.Cols() {
			rgb := frame.At(r, c)
			if rgb.IsOff() {
				fmt.Fprint(w, "..")

				continue
			}

			fmt.Fprint(w, color.BgRGB(int(rgb.R), int(rgb.G), int(rgb.B)).Sprint("##"))
		}

		fmt.Fprintln(w)
	}
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
