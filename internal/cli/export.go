package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/opsloadout/internal/export"
)

// newExportCmd writes a stored checklist to a JSON or CSV file.
func newExportCmd(a *App) *cobra.Command {
	var (
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved checklist as JSON or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checklist, err := a.store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if format != "json" && format != "csv" {
				return fmt.Errorf("unknown format %q, want json or csv", format)
			}

			path := filepath.Join(outDir, export.Filename(checklist.Name, format, time.Now()))
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			defer f.Close()

			if format == "json" {
				err = export.JSON(f, checklist.Name, checklist.Items)
			} else {
				err = export.CSV(f, checklist.Items, a.lang)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format (json|csv)")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")

	return cmd
}
