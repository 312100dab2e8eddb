package model

import (
	"reflect"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	it := Normalize(RawItem{
		ID:       "item-1",
		Name:     "Water filter",
		Category: "Survival Gear",
	})

	if it.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", it.Quantity)
	}
	if it.RecommendedQuantity != 1 {
		t.Errorf("recommended quantity = %d, want 1", it.RecommendedQuantity)
	}
	if it.RepackFrequency != RepackNever {
		t.Errorf("repack frequency = %q, want %q", it.RepackFrequency, RepackNever)
	}
	if it.Description != "" {
		t.Errorf("description = %q, want empty", it.Description)
	}
	if it.PackedByDefault {
		t.Error("packed_by_default should default to false")
	}
	if want := []string{"survival-gear"}; !reflect.DeepEqual(it.CategoryTags, want) {
		t.Errorf("category tags = %v, want %v", it.CategoryTags, want)
	}
}

func TestNormalizePreservesExplicitValues(t *testing.T) {
	zero := 0
	five := 5
	pbd := true
	it := Normalize(RawItem{
		ID:                  "item-2",
		Name:                "Chem light",
		Category:            "Signaling",
		Quantity:            &zero,
		RecommendedQuantity: &five,
		PackedByDefault:     &pbd,
		RepackFrequency:     RepackMonthly,
		CategoryTags:        []string{"glow", "night"},
		Description:         "12h single use",
	})

	if it.Quantity != 0 {
		t.Errorf("explicit zero quantity was overwritten: %d", it.Quantity)
	}
	if it.RecommendedQuantity != 5 {
		t.Errorf("recommended quantity = %d, want 5", it.RecommendedQuantity)
	}
	if !it.PackedByDefault {
		t.Error("explicit packed_by_default lost")
	}
	if it.RepackFrequency != RepackMonthly {
		t.Errorf("repack frequency = %q, want monthly", it.RepackFrequency)
	}
	if want := []string{"glow", "night"}; !reflect.DeepEqual(it.CategoryTags, want) {
		t.Errorf("category tags = %v, want %v", it.CategoryTags, want)
	}
	if it.Description != "12h single use" {
		t.Errorf("description = %q", it.Description)
	}
}

func TestNormalizePackedByDefaultFallsBackToChecked(t *testing.T) {
	it := Normalize(RawItem{ID: "item-3", Name: "Torch", Checked: true})
	if !it.PackedByDefault {
		t.Error("packed_by_default should fall back to checked")
	}
}

func TestNormalizeUnknownRepackFrequency(t *testing.T) {
	it := Normalize(RawItem{ID: "item-4", Name: "Map", RepackFrequency: "yearly"})
	if it.RepackFrequency != RepackNever {
		t.Errorf("unknown frequency should normalize to never, got %q", it.RepackFrequency)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	conceal := 2.5
	first := Normalize(RawItem{
		ID:             "item-5",
		Name:           "Multitool",
		Category:       "Tools",
		WeightG:        180,
		VolumeCm3:      90,
		DualUse:        true,
		Concealability: &conceal,
		LegalityNotes:  map[string]string{"US": "permitted"},
		Sources:        []Source{{Title: "Field manual", URL: "https://example.org/fm"}},
		Scores:         map[string]float64{"survivability": 1},
	})

	second := Normalize(first.AsRaw())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-normalizing changed the item:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNormalizeDoesNotAliasInput(t *testing.T) {
	raw := RawItem{
		ID:            "item-6",
		Name:          "Radio",
		CategoryTags:  []string{"comm"},
		LegalityNotes: map[string]string{"US": "license required"},
		Sources:       []Source{{Title: "FCC"}},
		Scores:        map[string]float64{"signalability": 3},
	}

	it := Normalize(raw)
	it.CategoryTags[0] = "changed"
	it.LegalityNotes["US"] = "changed"
	it.Sources[0].Title = "changed"
	it.Scores["signalability"] = 99

	if raw.CategoryTags[0] != "comm" {
		t.Error("normalized item aliases input category tags")
	}
	if raw.LegalityNotes["US"] != "license required" {
		t.Error("normalized item aliases input legality notes")
	}
	if raw.Sources[0].Title != "FCC" {
		t.Error("normalized item aliases input sources")
	}
	if raw.Scores["signalability"] != 3 {
		t.Error("normalized item aliases input scores")
	}
}

func TestMergeKeepsFieldsAbsentFromRaw(t *testing.T) {
	conceal := 1.5
	existing := Normalize(RawItem{
		ID:              "item-8",
		Name:            "Lockpick set",
		NameJA:          "ピッキングセット",
		Category:        "Entry",
		CategoryJA:      "侵入",
		PurposeShortJA:  "開錠",
		Checked:         true,
		Concealability:  &conceal,
		CategoryTags:    []string{"entry", "tools"},
		LegalityNotesJA: map[string]string{"JP": "所持規制あり"},
		Scores:          map[string]float64{"utility": 0.8},
	})

	merged := Merge(existing, RawItem{
		Name:     "Lockpick kit",
		NameJA:   "ピッキングキット",
		Category: "Entry",
		WeightG:  95,
	})

	if merged.ID != "item-8" {
		t.Errorf("merge changed the id: %q", merged.ID)
	}
	if merged.Name != "Lockpick kit" || merged.WeightG != 95 {
		t.Errorf("submitted fields not applied: %+v", merged)
	}
	if !merged.Checked {
		t.Error("merge dropped the packed state")
	}
	if merged.Concealability == nil || *merged.Concealability != 1.5 {
		t.Errorf("merge dropped concealability: %v", merged.Concealability)
	}
	if want := []string{"entry", "tools"}; !reflect.DeepEqual(merged.CategoryTags, want) {
		t.Errorf("merge dropped category tags: %v", merged.CategoryTags)
	}
	if merged.CategoryJA != "侵入" || merged.PurposeShortJA != "開錠" {
		t.Errorf("merge dropped translations: %+v", merged)
	}
	if merged.LegalityNotesJA["JP"] != "所持規制あり" {
		t.Errorf("merge dropped translated legality notes: %v", merged.LegalityNotesJA)
	}
	if !reflect.DeepEqual(merged.Scores, map[string]float64{"utility": 0.8}) {
		t.Errorf("merge dropped scores: %v", merged.Scores)
	}
}

func TestMergeAppliesPresentCollections(t *testing.T) {
	existing := Normalize(RawItem{
		ID:            "item-9",
		Name:          "Drone",
		LegalityNotes: map[string]string{"US": "registration required"},
		Sources:       []Source{{Title: "FAA"}},
	})

	qty := 2
	merged := Merge(existing, RawItem{
		Name:          "Drone",
		Quantity:      &qty,
		LegalityNotes: map[string]string{},
		Sources:       []Source{},
	})

	if merged.Quantity != 2 {
		t.Errorf("quantity = %d, want 2", merged.Quantity)
	}
	if len(merged.LegalityNotes) != 0 {
		t.Errorf("present empty notes should blank the stored ones: %v", merged.LegalityNotes)
	}
	if len(merged.Sources) != 0 {
		t.Errorf("present empty sources should blank the stored ones: %v", merged.Sources)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Survival Gear":   "survival-gear",
		"  Digital  Kit ": "digital-kit",
		"tools":           "tools",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCloneItemsIsDeep(t *testing.T) {
	items := []Item{Normalize(RawItem{
		ID:            "item-7",
		Name:          "Tarp",
		Category:      "Shelter",
		LegalityNotes: map[string]string{"EU": "ok"},
	})}

	cloned := CloneItems(items)
	cloned[0].Name = "changed"
	cloned[0].CategoryTags[0] = "changed"
	cloned[0].LegalityNotes["EU"] = "changed"

	if items[0].Name != "Tarp" || items[0].CategoryTags[0] != "shelter" {
		t.Error("CloneItems shares memory with its input")
	}
	if items[0].LegalityNotes["EU"] != "ok" {
		t.Error("CloneItems shares legality notes with its input")
	}
}
