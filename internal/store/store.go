package store

import (
	"context"

	"github.com/nhle/opsloadout/internal/model"
)

// ChecklistStore defines the persistence interface for saved
// checklists. Implementations report failures through the shared
// error taxonomy: NOT_FOUND for missing ids, STORAGE_QUOTA_EXCEEDED
// when the medium is full, STORAGE_ERROR otherwise. A caller whose
// Upsert fails must treat the record as not saved.
type ChecklistStore interface {
	// ListAll returns every saved checklist in insertion order.
	ListAll(ctx context.Context) ([]model.Checklist, error)

	// Get returns the checklist with the given id.
	Get(ctx context.Context, id string) (*model.Checklist, error)

	// Upsert inserts the checklist, or replaces it in place when its
	// id already exists, preserving the original created_at. The
	// updated_at timestamp is always rewritten. An empty id is
	// assigned a fresh one. Returns the record as persisted.
	Upsert(ctx context.Context, c model.Checklist) (model.Checklist, error)

	// Delete removes a checklist by id. Deleting a missing id is a
	// no-op, not an error.
	Delete(ctx context.Context, id string) error
}
