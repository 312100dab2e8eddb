package itemform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/opsloadout/internal/editor"
	"github.com/nhle/opsloadout/internal/model"
	"github.com/nhle/opsloadout/internal/theme"
)

// ItemSubmittedMsg is dispatched when the form completes. EditID is
// empty for a new item and carries the edited item's id otherwise.
type ItemSubmittedMsg struct {
	EditID string
	Raw    model.RawItem
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name          string
	nameJA        string
	category      string
	weight        string
	volume        string
	quantity      string
	recommended   string
	repack        string
	purpose       string
	description   string
	dualUse       bool
	hazard        bool
	legalityNotes string
	sources       string
}

// Model is the Bubble Tea model for the item create/edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	editID string
	width  int
	height int
}

// New creates a new item form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for adding a new item.
func (m *Model) StartCreate() tea.Cmd {
	m.editID = ""
	*m.fb = formBindings{
		quantity:    "1",
		recommended: "1",
		repack:      model.RepackNever,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing item's fields.
func (m *Model) StartEdit(it model.Item) tea.Cmd {
	m.editID = it.ID
	notes := ""
	if len(it.LegalityNotes) > 0 {
		notes = legalityNotesText(it.LegalityNotes)
	}
	*m.fb = formBindings{
		name:          it.Name,
		nameJA:        it.NameJA,
		category:      it.Category,
		weight:        formatNumber(it.WeightG),
		volume:        formatNumber(it.VolumeCm3),
		quantity:      strconv.Itoa(it.Quantity),
		recommended:   strconv.Itoa(it.RecommendedQuantity),
		repack:        it.RepackFrequency,
		purpose:       it.PurposeShort,
		description:   it.Description,
		dualUse:       it.DualUse,
		hazard:        it.HazardFlag,
		legalityNotes: notes,
		sources:       sourcesText(it.Sources),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the item form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the item form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Item"
	if m.editID != "" {
		titleText = "Edit Item"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("What goes in the bag?").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Name (Japanese)").
				Placeholder("Optional").
				Value(&m.fb.nameJA),
			huh.NewInput().
				Title("Category").
				Placeholder("e.g. Tools, Survival, Comms").
				Value(&m.fb.category),
			huh.NewInput().
				Title("Weight (g)").
				Value(&m.fb.weight).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("Volume (cm3)").
				Value(&m.fb.volume).
				Validate(validateOptionalNumber),
			huh.NewInput().
				Title("Quantity").
				Value(&m.fb.quantity).
				Validate(validateOptionalInt),
			huh.NewInput().
				Title("Recommended Quantity").
				Value(&m.fb.recommended).
				Validate(validateOptionalInt),
			huh.NewSelect[string]().
				Title("Repack Frequency").
				Options(
					huh.NewOption("Never", model.RepackNever),
					huh.NewOption("Daily", model.RepackDaily),
					huh.NewOption("Weekly", model.RepackWeekly),
					huh.NewOption("Monthly", model.RepackMonthly),
				).
				Value(&m.fb.repack),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Purpose").
				Placeholder("One-line purpose").
				Value(&m.fb.purpose),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewConfirm().
				Title("Dual-use?").
				Value(&m.fb.dualUse),
			huh.NewConfirm().
				Title("Hazardous?").
				Value(&m.fb.hazard),
			huh.NewText().
				Title("Legality Notes").
				Placeholder(`{"US": "restricted", "JP": "prohibited"}`).
				Value(&m.fb.legalityNotes).
				Validate(validateLegalityNotes),
			huh.NewText().
				Title("Sources").
				Placeholder("One per line: Title https://...").
				Value(&m.fb.sources),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// handleSubmit converts the bound fields into a raw item record. Field
// validation already ran, so the parses here cannot fail.
func (m Model) handleSubmit() tea.Cmd {
	weight, _ := strconv.ParseFloat(strings.TrimSpace(m.fb.weight), 64)
	volume, _ := strconv.ParseFloat(strings.TrimSpace(m.fb.volume), 64)
	notes, _ := editor.ParseLegalityNotes(m.fb.legalityNotes)

	// The submission must carry every field the form owns, even when
	// cleared, so an edit merge can blank them. Fields the form does
	// not own stay nil and survive the merge untouched.
	sources := editor.ParseSources(m.fb.sources)
	if sources == nil {
		sources = []model.Source{}
	}

	raw := model.RawItem{
		Name:            strings.TrimSpace(m.fb.name),
		NameJA:          strings.TrimSpace(m.fb.nameJA),
		Category:        strings.TrimSpace(m.fb.category),
		WeightG:         weight,
		VolumeCm3:       volume,
		RepackFrequency: m.fb.repack,
		PurposeShort:    strings.TrimSpace(m.fb.purpose),
		Description:     strings.TrimSpace(m.fb.description),
		DualUse:         m.fb.dualUse,
		HazardFlag:      m.fb.hazard,
		LegalityNotes:   notes,
		Sources:         sources,
	}
	if qty, err := strconv.Atoi(strings.TrimSpace(m.fb.quantity)); err == nil {
		raw.Quantity = &qty
	}
	if rec, err := strconv.Atoi(strings.TrimSpace(m.fb.recommended)); err == nil {
		raw.RecommendedQuantity = &rec
	}

	editID := m.editID
	return func() tea.Msg { return ItemSubmittedMsg{EditID: editID, Raw: raw} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// legalityNotesText renders a notes map as the JSON object text shown
// in the form field.
func legalityNotesText(notes map[string]string) string {
	regions := make([]string, 0, len(notes))
	for r := range notes {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	var sb strings.Builder
	sb.WriteString("{")
	for i, r := range regions {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q: %q", r, notes[r])
	}
	sb.WriteString("}")
	return sb.String()
}

// sourcesText renders a source list as one "Title URL" line per source.
func sourcesText(sources []model.Source) string {
	lines := make([]string, 0, len(sources))
	for _, s := range sources {
		line := s.Title
		if s.URL != "" && s.URL != s.Title {
			line += " " + s.URL
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validateOptionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative whole number")
	}
	return nil
}

func validateLegalityNotes(s string) error {
	_, err := editor.ParseLegalityNotes(s)
	return err
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
