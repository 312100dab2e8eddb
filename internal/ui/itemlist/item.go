package itemlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
	"github.com/nhle/opsloadout/internal/theme"
)

// ListItem wraps a model.Item so it can be used in a bubbles/list.
type ListItem struct {
	Item model.Item
	Lang i18n.Lang
}

// FilterValue returns the string used for fuzzy filtering.
func (w ListItem) FilterValue() string {
	return i18n.Field(w.Item.Name, w.Item.NameJA, w.Lang)
}

// ItemDelegate implements list.ItemDelegate for rendering item rows.
type ItemDelegate struct {
	lang i18n.Lang
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single item row: check state, name, quantity against
// recommended, weight, and the dual-use / hazard badges.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	wrapper, ok := item.(ListItem)
	if !ok {
		return
	}

	it := wrapper.Item
	isSelected := index == m.Index()

	prefix := "[ ]"
	if it.Checked {
		prefix = "[x]"
	}

	name := i18n.Field(it.Name, it.NameJA, d.lang)

	qty := theme.QuantityStyle(it.Quantity, it.RecommendedQuantity).
		Render(fmt.Sprintf("x%d", it.Quantity))

	weight := theme.DimmedStyle.Render(formatWeight(it.WeightG * float64(it.Quantity)))

	badges := ""
	if it.DualUse {
		badges += " " + theme.DualUseBadgeStyle.Render("["+i18n.T(d.lang, "badge.dualUse")+"]")
	}
	if it.HazardFlag {
		badges += " " + theme.HazardBadgeStyle.Render("["+i18n.T(d.lang, "badge.hazard")+"]")
	}

	line := fmt.Sprintf("%s %s %s %s%s", prefix, name, qty, weight, badges)

	if it.Checked {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// formatWeight renders grams, switching to kilograms above 1000.
func formatWeight(grams float64) string {
	if grams >= 1000 {
		return fmt.Sprintf("%.1fkg", grams/1000)
	}
	return fmt.Sprintf("%.0fg", grams)
}
