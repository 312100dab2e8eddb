package itemlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/opsloadout/internal/editor"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/keys"
	"github.com/nhle/opsloadout/internal/theme"
)

// SelectedItemMsg is sent when the user opens an item's detail view.
type SelectedItemMsg struct {
	ItemID string
}

// ToggleItemMsg asks the parent to flip an item's packed state.
type ToggleItemMsg struct {
	ItemID string
}

// QuantityMsg asks the parent to adjust an item's quantity.
type QuantityMsg struct {
	ItemID string
	Delta  int
}

// DeleteItemMsg asks the parent to remove an item.
type DeleteItemMsg struct {
	ItemID string
}

// EditItemMsg asks the parent to open the edit form for an item.
type EditItemMsg struct {
	ItemID string
}

// Model is the main item list view component.
type Model struct {
	list       list.Model
	controller *editor.Controller
	keys       *keys.KeyMap
	lang       i18n.Lang

	query      string
	dualOnly   bool
	hazardOnly bool

	searchMode  bool
	searchInput textinput.Model

	width  int
	height int
}

// New creates a new item list model backed by the given controller.
func New(c *editor.Controller, k *keys.KeyMap, lang i18n.Lang, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{lang: lang}, width, height-2)
	l.Title = "Items"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search items..."
	si.Prompt = "/ "
	si.Width = width - 4

	m := Model{
		list:        l,
		controller:  c,
		keys:        k,
		lang:        lang,
		searchInput: si,
		width:       width,
		height:      height,
	}
	m.Reload()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Reload re-reads the item list from the controller, applying the
// current search query and flag filters.
func (m *Model) Reload() {
	items := m.controller.FilterItems(m.query, m.dualOnly, m.hazardOnly)
	rows := make([]list.Item, len(items))
	for i, it := range items {
		rows[i] = ListItem{Item: it, Lang: m.lang}
	}
	m.list.SetItems(rows)
}

// InSearchMode reports whether the search input currently has focus,
// so the parent leaves printable keys alone.
func (m Model) InSearchMode() bool {
	return m.searchMode
}

// SelectedItemID returns the id of the row under the cursor.
func (m Model) SelectedItemID() (string, bool) {
	row, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return "", false
	}
	return row.Item.ID, true
}

// FilterSummary describes the active filters for the status bar, or ""
// when no filter is active.
func (m Model) FilterSummary() string {
	var parts []string
	if m.query != "" {
		parts = append(parts, "search: "+m.query)
	}
	if m.dualOnly {
		parts = append(parts, "dual-use only")
	}
	if m.hazardOnly {
		parts = append(parts, "hazard only")
	}
	return strings.Join(parts, " | ")
}

// Update handles messages for the item list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = m.searchInput.Value()
		m.Reload()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		m.Reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		if id, ok := m.SelectedItemID(); ok {
			return m, func() tea.Msg { return SelectedItemMsg{ItemID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.SelectedItemID(); ok {
			return m, func() tea.Msg { return ToggleItemMsg{ItemID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.QtyUp):
		if id, ok := m.SelectedItemID(); ok {
			return m, func() tea.Msg { return QuantityMsg{ItemID: id, Delta: 1} }
		}
		return m, nil

	case key.Matches(msg, m.keys.QtyDown):
		if id, ok := m.SelectedItemID(); ok {
			return m, func() tea.Msg { return QuantityMsg{ItemID: id, Delta: -1} }
		}
		return m, nil

	case key.Matches(msg, m.keys.EditItem):
		if id, ok := m.SelectedItemID(); ok {
			return m, func() tea.Msg { return EditItemMsg{ItemID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteItem):
		if id, ok := m.SelectedItemID(); ok {
			return m, func() tea.Msg { return DeleteItemMsg{ItemID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.FilterDual):
		m.dualOnly = !m.dualOnly
		m.Reload()
		return m, nil

	case key.Matches(msg, m.keys.FilterHazard):
		m.hazardOnly = !m.hazardOnly
		m.Reload()
		return m, nil
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the item list, with the search input above it while
// searching.
func (m Model) View() string {
	if m.searchMode {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.searchInput.View(),
			m.list.View(),
		)
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
