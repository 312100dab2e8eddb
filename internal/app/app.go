// Package app is the root Bubble Tea model: it owns the editor
// controller and routes messages between the list, detail, form,
// picker, and help views.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/opsloadout/internal/catalog"
	"github.com/nhle/opsloadout/internal/editor"
	apperrors "github.com/nhle/opsloadout/internal/errors"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/keys"
	"github.com/nhle/opsloadout/internal/store"
	"github.com/nhle/opsloadout/internal/theme"
	"github.com/nhle/opsloadout/internal/ui"
	"github.com/nhle/opsloadout/internal/ui/detail"
	helpview "github.com/nhle/opsloadout/internal/ui/help"
	"github.com/nhle/opsloadout/internal/ui/itemform"
	"github.com/nhle/opsloadout/internal/ui/itemlist"
	"github.com/nhle/opsloadout/internal/ui/picker"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewPresetPicker
	ViewSavedPicker
	ViewHelp
	ViewRename
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the editing session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	controller   *editor.Controller
	catalog      catalog.Catalog
	store        store.ChecklistStore
	keys         *keys.KeyMap
	lang         i18n.Lang

	itemList   itemlist.Model
	detailView detail.Model
	formView   itemform.Model
	pickerView picker.Model
	helpView   helpview.Model

	renameInput textinput.Model

	defaultPreset string
	exportDir     string

	ready       bool
	statusText  string
	statusIsErr bool
}

// New creates the root application model.
func New(c *editor.Controller, cat catalog.Catalog, st store.ChecklistStore,
	lang i18n.Lang, defaultPreset, exportDir string) Model {
	k := keys.DefaultKeyMap()

	ri := textinput.New()
	ri.Placeholder = "checklist name"
	ri.Prompt = "Rename: "

	return Model{
		currentView:   ViewList,
		controller:    c,
		catalog:       cat,
		store:         st,
		keys:          k,
		lang:          lang,
		itemList:      itemlist.New(c, k, lang, 80, 24),
		detailView:    detail.New(k, lang, 80, 24),
		formView:      itemform.New(80, 24),
		pickerView:    picker.New(k, lang, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		renameInput:   ri,
		defaultPreset: defaultPreset,
		exportDir:     exportDir,
	}
}

// Init loads the startup preset into the session.
func (m Model) Init() tea.Cmd {
	return m.loadStartupSession()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.itemList.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.pickerView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sessionLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.itemList.Reload()
		m.currentView = ViewList
		m.clearStatus()
		return m, nil

	case checklistSavedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.statusText = fmt.Sprintf("saved %q", msg.saved.Name)
		m.statusIsErr = false
		return m, nil

	case savedListMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.pickerView.SetSaved(msg.checklists)
		m.previousView = m.currentView
		m.currentView = ViewSavedPicker
		return m, nil

	case savedDeletedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.itemList.Reload()
		return m, m.listSaved()

	case exportDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.statusText = "exported " + msg.path
		m.statusIsErr = false
		return m, nil

	case itemlist.SelectedItemMsg:
		it, ok := m.controller.Item(msg.ItemID)
		if !ok {
			return m, nil
		}
		m.controller.SelectItem(msg.ItemID)
		m.detailView.SetItem(it)
		m.previousView = m.currentView
		m.currentView = ViewDetail
		return m, nil

	case itemlist.ToggleItemMsg:
		if err := m.controller.ToggleChecked(msg.ItemID); err != nil {
			m.setError(err)
		}
		m.itemList.Reload()
		return m, nil

	case itemlist.QuantityMsg:
		if it, ok := m.controller.Item(msg.ItemID); ok {
			if err := m.controller.SetQuantity(msg.ItemID, it.Quantity+msg.Delta); err != nil {
				m.setError(err)
			}
		}
		m.itemList.Reload()
		return m, nil

	case itemlist.DeleteItemMsg:
		if err := m.controller.DeleteItem(msg.ItemID); err != nil {
			m.setError(err)
		}
		m.itemList.Reload()
		return m, nil

	case itemlist.EditItemMsg:
		it, ok := m.controller.Item(msg.ItemID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewForm
		return m, m.formView.StartEdit(it)

	case itemform.ItemSubmittedMsg:
		m.currentView = ViewList
		if msg.EditID == "" {
			m.controller.AddItem(msg.Raw)
		} else if err := m.controller.EditItem(msg.EditID, msg.Raw); err != nil {
			m.setError(err)
		}
		m.itemList.Reload()
		return m, nil

	case itemform.FormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case picker.PresetChosenMsg:
		m.currentView = ViewList
		return m, m.loadPreset(msg.Key)

	case picker.SavedChosenMsg:
		m.currentView = ViewList
		return m, m.loadSaved(msg.ID)

	case picker.DeleteSavedMsg:
		return m, m.deleteSaved(msg.ID)

	case picker.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewRename {
			return m.handleRenameKeys(msg)
		}
		if handled, model, cmd := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the focused
// list row. Returns handled=false to fall through to the active view.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// Never steal keys from the item form's text fields or the list's
	// search input.
	if m.currentView == ViewForm ||
		(m.currentView == ViewList && m.itemList.InSearchMode()) {
		if msg.String() == "ctrl+c" {
			return true, m, tea.Quit
		}
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return true, m, tea.Quit

	case "q":
		if m.currentView == ViewList {
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "n":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewForm
			return true, m, m.formView.StartCreate()
		}

	case "N":
		if m.currentView == ViewList {
			m.controller.NewChecklist()
			m.itemList.Reload()
			m.clearStatus()
			return true, m, nil
		}

	case "p":
		if m.currentView == ViewList {
			m.pickerView.SetPresets(m.catalog.ListByCategory("all"))
			m.previousView = m.currentView
			m.currentView = ViewPresetPicker
			return true, m, nil
		}

	case "o":
		if m.currentView == ViewList {
			return true, m, m.listSaved()
		}

	case "s":
		if m.currentView == ViewList {
			return true, m, m.save(editor.SaveOverwrite)
		}

	case "S":
		if m.currentView == ViewList {
			return true, m, m.save(editor.SaveAsNew)
		}

	case "r":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewRename
			m.renameInput.SetValue(m.controller.Name())
			return true, m, m.renameInput.Focus()
		}

	case "a":
		if m.currentView == ViewList {
			m.controller.SetAllChecked(true)
			m.itemList.Reload()
			return true, m, nil
		}

	case "A":
		if m.currentView == ViewList {
			m.controller.SetAllChecked(false)
			m.itemList.Reload()
			return true, m, nil
		}

	case "x":
		if m.currentView == ViewList {
			return true, m, m.exportChecklist()
		}
	}

	return false, m, nil
}

// handleRenameKeys drives the inline rename prompt.
func (m Model) handleRenameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.currentView = m.previousView
		if err := m.controller.Rename(m.renameInput.Value()); err != nil {
			m.setError(err)
		} else {
			m.clearStatus()
		}
		return m, nil

	case "esc":
		m.currentView = m.previousView
		return m, nil
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.itemList, cmd = m.itemList.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewPresetPicker, ViewSavedPicker:
		m.pickerView, cmd = m.pickerView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine(), m.statusIsErr)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.itemList.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewForm:
		return m.formView.View()
	case ViewPresetPicker, ViewSavedPicker:
		return m.pickerView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewRename:
		return "\n  " + m.renameInput.View()
	default:
		return ""
	}
}

// headerTitle shows the checklist name with an unsaved-changes marker.
func (m Model) headerTitle() string {
	title := m.controller.Name()
	if m.controller.IsDirty() {
		title += " " + theme.DirtyMarkerStyle.Render("*")
	}
	return title
}

// headerStatus shows the packed totals and the binding state.
func (m Model) headerStatus() string {
	t := m.controller.Totals()
	totals := fmt.Sprintf("%s %s  %s %.0fcm3",
		i18n.T(m.lang, "total.weight"), formatWeight(t.WeightG),
		i18n.T(m.lang, "total.volume"), t.VolumeCm3)

	if _, bound := m.controller.BoundID(); !bound {
		return totals + "  [unsaved]"
	}
	return totals
}

// statusLine returns the status bar content: a pending status or error
// message if present, otherwise keyboard hints for the active view.
func (m Model) statusLine() string {
	if m.statusText != "" {
		return m.statusText
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "esc back | j/k scroll"
	case ViewPresetPicker:
		return "enter load preset | esc back"
	case ViewSavedPicker:
		return "enter load | d delete | esc back"
	case ViewForm:
		return "enter next | shift+tab previous | esc cancel"
	case ViewRename:
		return "enter apply | esc cancel"
	default:
		filterSummary := m.itemList.FilterSummary()
		if filterSummary != "" {
			return filterSummary + " | 1/2 toggle | / search"
		}
		return "space pack | n new | p presets | o saved | s save | x export | ? help"
	}
}

func (m *Model) setError(err error) {
	m.statusText = err.Error()
	// Quota failures get an actionable hint instead of the raw driver
	// message; the session itself is already intact.
	if code, ok := apperrors.CodeOf(err); ok && code == apperrors.CodeStorageQuota {
		m.statusText = "storage is full: delete saved checklists (o, then d) and retry"
	}
	m.statusIsErr = true
}

func (m *Model) clearStatus() {
	m.statusText = ""
	m.statusIsErr = false
}

// formatWeight renders grams, switching to kilograms above 1000.
func formatWeight(grams float64) string {
	if grams >= 1000 {
		return fmt.Sprintf("%.1fkg", grams/1000)
	}
	return fmt.Sprintf("%.0fg", grams)
}
