// Package picker is the checklist source chooser: preset templates
// grouped by category, or previously saved checklists.
package picker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/opsloadout/internal/catalog"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/keys"
	"github.com/nhle/opsloadout/internal/model"
	"github.com/nhle/opsloadout/internal/theme"
)

// Mode selects what the picker lists.
type Mode int

const (
	ModePresets Mode = iota
	ModeSaved
)

// PresetChosenMsg is sent when the user picks a preset to load.
type PresetChosenMsg struct {
	Key string
}

// SavedChosenMsg is sent when the user picks a saved checklist to load.
type SavedChosenMsg struct {
	ID string
}

// DeleteSavedMsg asks the parent to delete a saved checklist.
type DeleteSavedMsg struct {
	ID string
}

// CloseMsg signals the parent to close the picker.
type CloseMsg struct{}

// row is one selectable picker entry.
type row struct {
	id       string
	label    string
	category string
	detail   string
}

func (r row) FilterValue() string { return r.label }

// rowDelegate renders picker rows with a category badge.
type rowDelegate struct{}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}

	badge := ""
	if r.category != "" {
		badge = theme.CategoryStyle(r.category).Render(r.category) + " "
	}
	line := fmt.Sprintf("%s%s  %s", badge, r.label, theme.DimmedStyle.Render(r.detail))

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

// Model is the picker view component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	lang   i18n.Lang
	mode   Mode
	width  int
	height int
}

// New creates a new picker model.
func New(k *keys.KeyMap, lang i18n.Lang, width, height int) Model {
	l := list.New([]list.Item{}, rowDelegate{}, width, height-2)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		lang:   lang,
		width:  width,
		height: height,
	}
}

// SetPresets loads catalog entries into the picker. Entries arrive
// already grouped by category in the fixed enumeration order.
func (m *Model) SetPresets(entries []catalog.Entry) {
	m.mode = ModePresets
	m.list.Title = "Presets"
	rows := make([]list.Item, len(entries))
	for i, e := range entries {
		rows[i] = row{
			id:       e.Key,
			label:    e.DisplayName,
			category: e.Category,
			detail:   fmt.Sprintf("%d items", e.ItemCount),
		}
	}
	m.list.SetItems(rows)
	m.list.ResetSelected()
}

// SetSaved loads saved checklists into the picker.
func (m *Model) SetSaved(checklists []model.Checklist) {
	m.mode = ModeSaved
	m.list.Title = i18n.T(m.lang, "optgroup.saved")
	rows := make([]list.Item, len(checklists))
	for i, c := range checklists {
		rows[i] = row{
			id:    c.ID,
			label: c.Name,
			detail: fmt.Sprintf("%d items, updated %s",
				len(c.Items), c.UpdatedAt.Format("2006-01-02")),
		}
	}
	m.list.SetItems(rows)
	m.list.ResetSelected()
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }

		case key.Matches(msg, m.keys.Select):
			r, ok := m.list.SelectedItem().(row)
			if !ok {
				return m, nil
			}
			if m.mode == ModePresets {
				return m, func() tea.Msg { return PresetChosenMsg{Key: r.id} }
			}
			return m, func() tea.Msg { return SavedChosenMsg{ID: r.id} }

		case key.Matches(msg, m.keys.DeleteItem):
			if m.mode == ModeSaved {
				if r, ok := m.list.SelectedItem().(row); ok {
					return m, func() tea.Msg { return DeleteSavedMsg{ID: r.id} }
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	return m.list.View()
}

// SetSize updates the picker dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
