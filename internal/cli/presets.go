package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPresetsCmd lists the available preset templates.
func newPresetsCmd(a *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List available preset templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.cat.ListByCategory(category)
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no presets found")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-10s %3d items  %s\n",
					e.Key, e.Category, e.ItemCount, e.DisplayName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "all",
		"Filter by category (evasion|edc|rescue|security|disaster|hacker|all)")

	return cmd
}
