package holdlight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dasdy/holdlight/db"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	importFrom      string
	importOverwrite bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy boulders from one store into another",
	Long: `Copies every boulder from --from into --store, e.g. to move a boulders.yml
file into sqlite or redis. Existing boulders are kept unless --overwrite is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if importFrom == "" {
			return errors.New("--from is required")
		}

		ctx := cmd.Context()

		src, err := db.Open(ctx, importFrom)
		if err != nil {
			return fmt.Errorf("could not open source store: %w", err)
		}
		defer src.Close()

		dst, err := db.Open(ctx, cfg.StorePath)
		if err != nil {
			return fmt.Errorf("could not open target store: %w", err)
		}
		defer dst.Close()

		copied, skipped, err := copyBoulders(ctx, src, dst, importOverwrite, func(total int) func() {
			bar := progressbar.Default(int64(total), "Importing boulders...")

			return func() { _ = bar.Add(1) }
		})
		if err != nil {
			return err
		}

		slog.Info("Import finished", "copied", copied, "skipped", skipped, "from", importFrom, "to", cfg.StorePath)

		return nil
	},
}

// copyBoulders copies src into dst. progress receives the total once and
// returns the function called after each boulder.
func copyBoulders(ctx context.Context, src, dst db.Storage, overwrite bool, progress func(total int) func()) (int, int, error) {
	boulders, err := src.List(ctx)
	if err != nil {
		return 0, 0, err
	}

	step := progress(len(boulders))
	copied, skipped := 0, 0

	for _, b := range boulders {
		if !overwrite {
			_, err := dst.Load(ctx, b.Name)
			if err == nil {
				slog.Debug("Skipping existing boulder", "name", b.Name)

				skipped++

				step()

				continue
			}

			if !errors.Is(err, db.ErrNotFound) {
				return copied, skipped, err
			}
		}

		boulder, err := src.Load(ctx, b.Name)
		if err != nil {
			return copied, skipped, err
		}

		if err := dst.Save(ctx, b.Name, boulder); err != nil {
			return copied, skipped, err
		}

		copied++

		step()
	}

	return copied, skipped, nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFrom, "from", "", "Store to read boulders from")
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace boulders that already exist in the target store")
}
