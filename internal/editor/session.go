// Package editor owns the live editing buffer and the checklist
// identity state machine: what is currently being edited, whether it
// is bound to a saved checklist, and every operation that may change
// that.
package editor

import "github.com/nhle/opsloadout/internal/model"

// Session is the single in-memory record of what is being edited. A
// session is either unbound (new or loaded from a preset) or bound to
// a saved checklist by id. It is owned by a Controller and replaced
// wholesale on load/new; it is never shared.
type Session struct {
	// Name is the working checklist name.
	Name string

	// Items is the ordered item list. Every element has passed
	// through model.Normalize and carries a unique id.
	Items []model.Item

	// SelectedItemID is the item shown in the detail view, if any.
	SelectedItemID string

	// BoundID is the saved checklist this session overwrites on save.
	// Empty means unbound.
	BoundID string

	// Dirty is true when the session holds mutations not yet
	// persisted. It is false immediately after load, new, and a
	// successful save.
	Dirty bool
}

// Totals is the checked-items summary shown in the footer: grams and
// cubic centimeters, each multiplied by quantity.
type Totals struct {
	WeightG   float64
	VolumeCm3 float64
}

// itemIndex returns the position of the item with the given id, or -1.
func (s *Session) itemIndex(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// totals sums weight and volume over checked items.
func (s *Session) totals() Totals {
	var t Totals
	for i := range s.Items {
		it := &s.Items[i]
		if !it.Checked {
			continue
		}
		qty := float64(it.Quantity)
		t.WeightG += it.WeightG * qty
		t.VolumeCm3 += it.VolumeCm3 * qty
	}
	return t
}
