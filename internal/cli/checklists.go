package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newChecklistsCmd manages stored checklists from the command line.
func newChecklistsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklists",
		Short: "Manage saved checklists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listChecklists(cmd, a)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved checklists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listChecklists(cmd, a)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	return cmd
}

func listChecklists(cmd *cobra.Command, a *App) error {
	checklists, err := a.store.ListAll(cmd.Context())
	if err != nil {
		return err
	}
	if len(checklists) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved checklists")
		return nil
	}
	for _, c := range checklists {
		fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-30s %3d items  updated %s\n",
			c.ID, c.Name, len(c.Items), c.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
