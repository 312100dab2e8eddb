package detail

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/keys"
	"github.com/nhle/opsloadout/internal/model"
	"github.com/nhle/opsloadout/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model is the item detail view component.
type Model struct {
	item     *model.Item
	viewport viewport.Model
	keys     *keys.KeyMap
	lang     i18n.Lang
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, lang i18n.Lang, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		lang:     lang,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetItem loads an item into the view.
func (m *Model) SetItem(it model.Item) {
	m.item = &it
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.item == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No item selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	it := m.item
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorGray)

	title := titleStyle.Render(i18n.Field(it.Name, it.NameJA, m.lang))
	badges := ""
	if it.DualUse {
		badges += " " + theme.DualUseBadgeStyle.Render("["+i18n.T(m.lang, "badge.dualUse")+"]")
	}
	if it.HazardFlag {
		badges += " " + theme.HazardBadgeStyle.Render("["+i18n.T(m.lang, "badge.hazard")+"]")
	}
	sections = append(sections, title+badges)

	category := i18n.Field(it.Category, it.CategoryJA, m.lang)
	sections = append(sections, labelStyle.Render("Category: ")+category)
	if len(it.CategoryTags) > 0 {
		sections = append(sections, labelStyle.Render("Tags: ")+strings.Join(it.CategoryTags, ", "))
	}

	sections = append(sections, fmt.Sprintf(
		"%s %.0fg x%d   %s %.0fcm3",
		labelStyle.Render("Weight:"), it.WeightG, it.Quantity,
		labelStyle.Render("Volume:"), it.VolumeCm3,
	))
	sections = append(sections, fmt.Sprintf(
		"%s %d (recommended %d)   %s %s",
		labelStyle.Render("Quantity:"), it.Quantity, it.RecommendedQuantity,
		labelStyle.Render("Repack:"), i18n.T(m.lang, "freq."+it.RepackFrequency),
	))

	if purpose := i18n.Field(it.PurposeShort, it.PurposeShortJA, m.lang); purpose != "" {
		sections = append(sections, labelStyle.Render("Purpose: ")+purpose)
	}

	if desc := i18n.Field(it.Description, it.DescriptionJA, m.lang); desc != "" {
		sections = append(sections, "", desc)
	}

	if it.Concealability != nil {
		sections = append(sections, fmt.Sprintf("%s %.1f",
			labelStyle.Render("Concealability:"), *it.Concealability))
	}

	notes := i18n.Notes(it.LegalityNotes, it.LegalityNotesJA, m.lang)
	if len(notes) > 0 {
		sections = append(sections, "", labelStyle.Render("Legality"))
		regions := make([]string, 0, len(notes))
		for r := range notes {
			regions = append(regions, r)
		}
		sort.Strings(regions)
		for _, r := range regions {
			sections = append(sections, fmt.Sprintf("  %s: %s", r, notes[r]))
		}
	}

	if len(it.Sources) > 0 {
		sections = append(sections, "", labelStyle.Render("Sources"))
		for _, src := range it.Sources {
			line := "  " + src.Title
			if src.URL != "" {
				line += "  " + theme.DimmedStyle.Render(src.URL)
			}
			sections = append(sections, line)
		}
	}

	if len(it.Scores) > 0 {
		sections = append(sections, "", labelStyle.Render("Scores"))
		names := make([]string, 0, len(it.Scores))
		for n := range it.Scores {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			sections = append(sections, fmt.Sprintf("  %s: %.1f", n, it.Scores[n]))
		}
	}

	content := strings.Join(sections, "\n")
	return theme.DetailPanelStyle.Width(m.width - 4).Render(content)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.item != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
