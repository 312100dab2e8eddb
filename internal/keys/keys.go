package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Help toggle
	Help key.Binding

	// Item actions
	Toggle     key.Binding
	AddItem    key.Binding
	EditItem   key.Binding
	DeleteItem key.Binding
	QtyUp      key.Binding
	QtyDown    key.Binding
	CheckAll   key.Binding
	UncheckAll key.Binding

	// Item filters
	FilterDual   key.Binding
	FilterHazard key.Binding

	// Checklist actions
	Presets key.Binding
	Saved   key.Binding
	Save    key.Binding
	SaveAs  key.Binding
	Rename  key.Binding
	Export  key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pack/unpack"),
		),
		AddItem: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new item"),
		),
		EditItem: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit item"),
		),
		DeleteItem: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete item"),
		),
		QtyUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "quantity up"),
		),
		QtyDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "quantity down"),
		),
		CheckAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "pack all"),
		),
		UncheckAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "unpack all"),
		),
		FilterDual: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dual-use only"),
		),
		FilterHazard: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "hazard only"),
		),
		Presets: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "presets"),
		),
		Saved: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "saved checklists"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		SaveAs: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "save as new"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.Select,
		k.Save, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Toggle, k.AddItem, k.EditItem, k.DeleteItem, k.QtyUp, k.QtyDown},
		{k.CheckAll, k.UncheckAll, k.Search, k.FilterDual, k.FilterHazard},
		{k.Presets, k.Saved, k.Save, k.SaveAs, k.Rename, k.Export, k.Help},
	}
}
