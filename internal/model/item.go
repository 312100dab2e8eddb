package model

// Repack frequency values for an item.
const (
	RepackNever   = "never"
	RepackDaily   = "daily"
	RepackWeekly  = "weekly"
	RepackMonthly = "monthly"
)

// Source is one provenance reference attached to an item.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// Item is a fully normalized packable thing. Every field an older or
// foreign record may omit is guaranteed present once the record has
// passed through Normalize; code downstream of the normalizer never
// checks for missing fields.
type Item struct {
	ID string `json:"id"`

	Name   string `json:"name"`
	NameJA string `json:"name_ja,omitempty"`

	Category   string `json:"category"`
	CategoryJA string `json:"category_ja,omitempty"`

	WeightG   float64 `json:"weight_g"`
	VolumeCm3 float64 `json:"volume_cm3"`

	Quantity            int `json:"quantity"`
	RecommendedQuantity int `json:"recommended_quantity"`

	RepackFrequency string `json:"repack_frequency"`

	PurposeShort   string `json:"purpose_short"`
	PurposeShortJA string `json:"purpose_short_ja,omitempty"`

	Description   string `json:"description"`
	DescriptionJA string `json:"description_ja,omitempty"`

	DualUse         bool `json:"dual_use"`
	HazardFlag      bool `json:"hazard_flag"`
	Checked         bool `json:"checked"`
	PackedByDefault bool `json:"packed_by_default"`

	CategoryTags   []string `json:"category_tags"`
	Concealability *float64 `json:"concealability,omitempty"`

	LegalityNotes   map[string]string `json:"legality_notes,omitempty"`
	LegalityNotesJA map[string]string `json:"legality_notes_ja,omitempty"`

	Sources []Source           `json:"sources,omitempty"`
	Scores  map[string]float64 `json:"scores,omitempty"`
}

// Clone returns a deep copy of the item. Slices and maps are copied
// so the result shares no memory with the receiver.
func (it Item) Clone() Item {
	out := it
	if it.CategoryTags != nil {
		out.CategoryTags = append([]string(nil), it.CategoryTags...)
	}
	if it.Concealability != nil {
		v := *it.Concealability
		out.Concealability = &v
	}
	out.LegalityNotes = cloneStringMap(it.LegalityNotes)
	out.LegalityNotesJA = cloneStringMap(it.LegalityNotesJA)
	if it.Sources != nil {
		out.Sources = append([]Source(nil), it.Sources...)
	}
	if it.Scores != nil {
		out.Scores = make(map[string]float64, len(it.Scores))
		for k, v := range it.Scores {
			out.Scores[k] = v
		}
	}
	return out
}

// CloneItems deep-copies a whole item list.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
