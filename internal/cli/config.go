package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/opsloadout/internal/model"
)

// newConfigCmd inspects and initializes the configuration file.
func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, a)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, a)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Long: "Writes the effective configuration (defaults merged with any " +
			"existing file) to the config path so it can be edited by hand.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := model.SaveConfig(a.ConfigPath, a.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", a.ConfigPath)
			return nil
		},
	})

	return cmd
}

func showConfig(cmd *cobra.Command, a *App) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config file:     %s\n", a.ConfigPath)
	fmt.Fprintf(out, "catalog.strategy %s\n", a.cfg.Catalog.Strategy)
	fmt.Fprintf(out, "catalog.dir      %s\n", a.cfg.Catalog.Dir)
	if a.cfg.Catalog.BaseURL != "" {
		fmt.Fprintf(out, "catalog.base_url %s\n", a.cfg.Catalog.BaseURL)
	}
	fmt.Fprintf(out, "default preset   %s\n", a.cfg.Catalog.DefaultPreset)
	fmt.Fprintf(out, "storage.db_path  %s\n", a.cfg.Storage.DBPath)
	fmt.Fprintf(out, "display.language %s\n", a.cfg.Display.Language)
	return nil
}
