// Package cli wires the configuration, catalog, store, and controller
// together behind a cobra command tree. Bare invocation starts the
// interactive TUI; subcommands cover scriptable listing and export.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/opsloadout/internal/app"
	"github.com/nhle/opsloadout/internal/catalog"
	"github.com/nhle/opsloadout/internal/editor"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
	"github.com/nhle/opsloadout/internal/store"
)

// App carries the resolved runtime pieces shared by every subcommand.
type App struct {
	ConfigPath string
	Language   string

	cfg   *model.AppConfig
	lang  i18n.Lang
	cat   catalog.Catalog
	store *store.SQLiteStore
}

// NewRootCmd builds the opsloadout command tree.
func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:          "opsloadout",
		Short:        "Terminal loadout checklist editor",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(a)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return a.teardown()
	}

	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", model.DefaultConfigPath(),
		"Path to the configuration file")
	cmd.PersistentFlags().StringVar(&a.Language, "lang", "",
		"Display language (en|ja), overrides the configured one")

	cmd.AddCommand(newPresetsCmd(a))
	cmd.AddCommand(newChecklistsCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// setup loads configuration and opens the catalog and store.
func (a *App) setup() error {
	cfg, err := model.LoadConfig(a.ConfigPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	pref := cfg.Display.Language
	if a.Language != "" {
		pref = a.Language
	}
	a.lang = i18n.Detect(pref)

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	a.store = s

	a.cat = catalog.Open(cfg.Catalog, a.lang)
	return nil
}

// teardown closes the store.
func (a *App) teardown() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// runTUI starts the interactive editor.
func runTUI(a *App) error {
	controller := editor.New(a.cat, a.store, a.lang)

	root := app.New(controller, a.cat, a.store, a.lang,
		a.cfg.Catalog.DefaultPreset, ".")

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("terminal UI exited with an error", "error", err)
		return err
	}
	return nil
}
