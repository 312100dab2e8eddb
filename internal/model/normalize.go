package model

import (
	"regexp"
	"strings"
)

// RawItem is the JSON-facing shape of an item as found in preset
// payloads, persisted checklists, and form submissions. Fields whose
// absence is meaningful are pointers; everything else zero-defaults.
// RawItem is the only place the schema drift of older records is
// visible; Normalize converts it into a complete Item.
type RawItem struct {
	ID string `json:"id"`

	Name   string `json:"name"`
	NameJA string `json:"name_ja,omitempty"`

	Category   string `json:"category"`
	CategoryJA string `json:"category_ja,omitempty"`

	WeightG   float64 `json:"weight_g"`
	VolumeCm3 float64 `json:"volume_cm3"`

	Quantity            *int `json:"quantity,omitempty"`
	RecommendedQuantity *int `json:"recommended_quantity,omitempty"`

	RepackFrequency string `json:"repack_frequency,omitempty"`

	PurposeShort   string `json:"purpose_short"`
	PurposeShortJA string `json:"purpose_short_ja,omitempty"`

	Description   string `json:"description,omitempty"`
	DescriptionJA string `json:"description_ja,omitempty"`

	DualUse         bool  `json:"dual_use"`
	HazardFlag      bool  `json:"hazard_flag"`
	Checked         bool  `json:"checked"`
	PackedByDefault *bool `json:"packed_by_default,omitempty"`

	CategoryTags   []string `json:"category_tags,omitempty"`
	Concealability *float64 `json:"concealability,omitempty"`

	LegalityNotes   map[string]string `json:"legality_notes,omitempty"`
	LegalityNotesJA map[string]string `json:"legality_notes_ja,omitempty"`

	Sources []Source           `json:"sources,omitempty"`
	Scores  map[string]float64 `json:"scores,omitempty"`
}

var slugSpaces = regexp.MustCompile(`\s+`)

// Slugify lowercases s and collapses whitespace runs into hyphens,
// matching the default category tag derived from an item's category.
func Slugify(s string) string {
	return slugSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// Normalize fills every defaulted field of a raw item and returns a
// complete Item. It is total (never fails), does not mutate its input,
// and deep-copies all reference fields so the result holds no pointer
// into the source record. Applying it to an already-normalized item
// changes nothing.
func Normalize(raw RawItem) Item {
	it := Item{
		ID:              raw.ID,
		Name:            raw.Name,
		NameJA:          raw.NameJA,
		Category:        raw.Category,
		CategoryJA:      raw.CategoryJA,
		WeightG:         raw.WeightG,
		VolumeCm3:       raw.VolumeCm3,
		RepackFrequency: raw.RepackFrequency,
		PurposeShort:    raw.PurposeShort,
		PurposeShortJA:  raw.PurposeShortJA,
		Description:     raw.Description,
		DescriptionJA:   raw.DescriptionJA,
		DualUse:         raw.DualUse,
		HazardFlag:      raw.HazardFlag,
		Checked:         raw.Checked,
		LegalityNotes:   cloneStringMap(raw.LegalityNotes),
		LegalityNotesJA: cloneStringMap(raw.LegalityNotesJA),
	}

	it.Quantity = 1
	if raw.Quantity != nil && *raw.Quantity >= 0 {
		it.Quantity = *raw.Quantity
	}

	it.RecommendedQuantity = 1
	if raw.RecommendedQuantity != nil && *raw.RecommendedQuantity >= 0 {
		it.RecommendedQuantity = *raw.RecommendedQuantity
	}

	if raw.PackedByDefault != nil {
		it.PackedByDefault = *raw.PackedByDefault
	} else {
		it.PackedByDefault = raw.Checked
	}

	switch raw.RepackFrequency {
	case RepackNever, RepackDaily, RepackWeekly, RepackMonthly:
	default:
		it.RepackFrequency = RepackNever
	}

	if raw.CategoryTags != nil {
		it.CategoryTags = append([]string(nil), raw.CategoryTags...)
	} else if raw.Category != "" {
		it.CategoryTags = []string{Slugify(raw.Category)}
	} else {
		it.CategoryTags = []string{}
	}

	if raw.Concealability != nil {
		v := *raw.Concealability
		it.Concealability = &v
	}
	if raw.Sources != nil {
		it.Sources = append([]Source(nil), raw.Sources...)
	}
	if raw.Scores != nil {
		it.Scores = make(map[string]float64, len(raw.Scores))
		for k, v := range raw.Scores {
			it.Scores[k] = v
		}
	}

	return it
}

// Merge overlays a submitted raw record onto an existing item and
// returns the re-normalized result. Value fields the edit form always
// carries replace the current ones; fields whose absence a raw record
// can express (nil pointers, maps, and slices) replace only when
// present, so a partial submission cannot silently blank scores,
// concealability, tags, or the Japanese translations. The id and the
// packed state never change through a merge.
func Merge(existing Item, raw RawItem) Item {
	base := existing.AsRaw()

	base.Name = raw.Name
	base.NameJA = raw.NameJA
	base.Category = raw.Category
	base.WeightG = raw.WeightG
	base.VolumeCm3 = raw.VolumeCm3
	base.RepackFrequency = raw.RepackFrequency
	base.PurposeShort = raw.PurposeShort
	base.Description = raw.Description
	base.DualUse = raw.DualUse
	base.HazardFlag = raw.HazardFlag

	if raw.Quantity != nil {
		base.Quantity = raw.Quantity
	}
	if raw.RecommendedQuantity != nil {
		base.RecommendedQuantity = raw.RecommendedQuantity
	}
	if raw.PackedByDefault != nil {
		base.PackedByDefault = raw.PackedByDefault
	}
	if raw.Concealability != nil {
		base.Concealability = raw.Concealability
	}
	if raw.CategoryTags != nil {
		base.CategoryTags = raw.CategoryTags
	}
	if raw.LegalityNotes != nil {
		base.LegalityNotes = raw.LegalityNotes
	}
	if raw.LegalityNotesJA != nil {
		base.LegalityNotesJA = raw.LegalityNotesJA
	}
	if raw.Sources != nil {
		base.Sources = raw.Sources
	}
	if raw.Scores != nil {
		base.Scores = raw.Scores
	}

	return Normalize(base)
}

// NormalizeAll normalizes a whole raw item list in order.
func NormalizeAll(raws []RawItem) []Item {
	items := make([]Item, len(raws))
	for i, r := range raws {
		items[i] = Normalize(r)
	}
	return items
}

// AsRaw converts a complete item back to its raw shape, round-tripping
// every field. Normalize(it.AsRaw()) is identical to it.
func (it Item) AsRaw() RawItem {
	c := it.Clone()
	qty := c.Quantity
	rec := c.RecommendedQuantity
	pbd := c.PackedByDefault
	return RawItem{
		ID:                  c.ID,
		Name:                c.Name,
		NameJA:              c.NameJA,
		Category:            c.Category,
		CategoryJA:          c.CategoryJA,
		WeightG:             c.WeightG,
		VolumeCm3:           c.VolumeCm3,
		Quantity:            &qty,
		RecommendedQuantity: &rec,
		RepackFrequency:     c.RepackFrequency,
		PurposeShort:        c.PurposeShort,
		PurposeShortJA:      c.PurposeShortJA,
		Description:         c.Description,
		DescriptionJA:       c.DescriptionJA,
		DualUse:             c.DualUse,
		HazardFlag:          c.HazardFlag,
		Checked:             c.Checked,
		PackedByDefault:     &pbd,
		CategoryTags:        c.CategoryTags,
		Concealability:      c.Concealability,
		LegalityNotes:       c.LegalityNotes,
		LegalityNotesJA:     c.LegalityNotesJA,
		Sources:             c.Sources,
		Scores:              c.Scores,
	}
}
