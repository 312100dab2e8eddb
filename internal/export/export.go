// Package export renders the current items into the flat CSV and
// structured JSON projections consumed by external tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
)

// document is the structured JSON projection of a checklist.
type document struct {
	ChecklistName string       `json:"checklistName"`
	CreatedAt     time.Time    `json:"createdAt"`
	Items         []model.Item `json:"items"`
}

// JSON writes the full structured projection: checklist name, export
// timestamp, and every item with all normalized fields.
func JSON(w io.Writer, name string, items []model.Item) error {
	doc := document{
		ChecklistName: name,
		CreatedAt:     time.Now().UTC(),
		Items:         items,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding checklist JSON: %w", err)
	}
	return nil
}

// csvHeader is the fixed column set of the tabular projection.
var csvHeader = []string{
	"id", "name", "category", "weight_g", "volume_cm3",
	"purpose_short", "dual_use", "hazard_flag", "legality_notes",
}

// CSV writes the flat tabular projection, one row per item. Legality
// notes are embedded as JSON text; the boolean flags are 1/0.
func CSV(w io.Writer, items []model.Item, lang i18n.Lang) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, it := range items {
		notes := i18n.Notes(it.LegalityNotes, it.LegalityNotesJA, lang)
		if notes == nil {
			notes = map[string]string{}
		}
		notesJSON, err := json.Marshal(notes)
		if err != nil {
			return fmt.Errorf("encoding legality notes for item %s: %w", it.ID, err)
		}

		row := []string{
			it.ID,
			i18n.Field(it.Name, it.NameJA, lang),
			i18n.Field(it.Category, it.CategoryJA, lang),
			strconv.FormatFloat(it.WeightG, 'f', -1, 64),
			strconv.FormatFloat(it.VolumeCm3, 'f', -1, 64),
			i18n.Field(it.PurposeShort, it.PurposeShortJA, lang),
			boolFlag(it.DualUse),
			boolFlag(it.HazardFlag),
			string(notesJSON),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for item %s: %w", it.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

var filenameSpaces = regexp.MustCompile(`\s+`)

// Filename builds the conventional export filename:
// Name_YYYYMMDD_HHMMSS.ext, with whitespace runs replaced by
// underscores.
func Filename(name, ext string, now time.Time) string {
	base := filenameSpaces.ReplaceAllString(name, "_")
	return fmt.Sprintf("%s_%s.%s", base, now.Format("20060102_150405"), ext)
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
