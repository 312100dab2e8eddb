package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorBarStyle replaces the status bar content when an operation fails.
var ErrorBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle renders packed (checked) items at reduced emphasis.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DualUseBadgeStyle marks items flagged as dual-use.
var DualUseBadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorOrange)

// HazardBadgeStyle marks items flagged as hazardous.
var HazardBadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// TotalsStyle renders the footer weight/volume summary.
var TotalsStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGreen)

// DirtyMarkerStyle renders the unsaved-changes indicator in the header.
var DirtyMarkerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// CategoryStyle returns a color-coded style for a preset category key.
func CategoryStyle(category string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch category {
	case "evasion":
		return base.Foreground(ColorMagenta)
	case "edc":
		return base.Foreground(ColorBlue)
	case "rescue":
		return base.Foreground(ColorOrange)
	case "security":
		return base.Foreground(ColorYellow)
	case "disaster":
		return base.Foreground(ColorRed)
	case "hacker":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// QuantityStyle renders an item's quantity column, highlighting
// shortfalls against the recommended quantity.
func QuantityStyle(qty, recommended int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	if qty < recommended {
		return base.Foreground(ColorYellow)
	}
	return base.Foreground(ColorGray)
}
