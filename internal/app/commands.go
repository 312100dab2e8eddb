package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/opsloadout/internal/editor"
	"github.com/nhle/opsloadout/internal/export"
	"github.com/nhle/opsloadout/internal/model"
)

// sessionLoadedMsg reports the outcome of replacing the session from a
// preset or saved checklist.
type sessionLoadedMsg struct {
	err error
}

// checklistSavedMsg reports the outcome of persisting the session.
type checklistSavedMsg struct {
	saved model.Checklist
	err   error
}

// savedListMsg carries the stored checklists for the saved picker.
type savedListMsg struct {
	checklists []model.Checklist
	err        error
}

// savedDeletedMsg reports the outcome of deleting a stored checklist.
type savedDeletedMsg struct {
	err error
}

// exportDoneMsg reports the outcome of writing export files.
type exportDoneMsg struct {
	path string
	err  error
}

// loadStartupSession loads the configured default preset, with the
// controller handling the fallback chain.
func (m Model) loadStartupSession() tea.Cmd {
	c := m.controller
	preset := m.defaultPreset
	return func() tea.Msg {
		c.Init(context.Background(), preset)
		return sessionLoadedMsg{}
	}
}

// loadPreset replaces the session with a preset's items.
func (m Model) loadPreset(key string) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		return sessionLoadedMsg{err: c.LoadPreset(context.Background(), key)}
	}
}

// loadSaved replaces the session with a stored checklist.
func (m Model) loadSaved(id string) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		return sessionLoadedMsg{err: c.LoadSaved(context.Background(), id)}
	}
}

// save persists the session in the given mode.
func (m Model) save(mode editor.SaveMode) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		saved, err := c.Save(context.Background(), mode)
		return checklistSavedMsg{saved: saved, err: err}
	}
}

// listSaved fetches every stored checklist for the saved picker.
func (m Model) listSaved() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		checklists, err := s.ListAll(context.Background())
		return savedListMsg{checklists: checklists, err: err}
	}
}

// deleteSaved removes a stored checklist, resetting the session if it
// was bound to it.
func (m Model) deleteSaved(id string) tea.Cmd {
	c := m.controller
	return func() tea.Msg {
		return savedDeletedMsg{err: c.DeleteSaved(context.Background(), id)}
	}
}

// exportChecklist writes both export projections of the current
// session into the export directory.
func (m Model) exportChecklist() tea.Cmd {
	name := m.controller.Name()
	items := m.controller.Items()
	lang := m.lang
	dir := m.exportDir

	return func() tea.Msg {
		now := time.Now()

		jsonPath := filepath.Join(dir, export.Filename(name, "json", now))
		jf, err := os.Create(jsonPath)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer jf.Close()
		if err := export.JSON(jf, name, items); err != nil {
			return exportDoneMsg{err: err}
		}

		csvPath := filepath.Join(dir, export.Filename(name, "csv", now))
		cf, err := os.Create(csvPath)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer cf.Close()
		if err := export.CSV(cf, items, lang); err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{path: jsonPath + ", " + csvPath}
	}
}
