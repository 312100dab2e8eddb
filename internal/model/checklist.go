package model

import "time"

// Checklist is a named, persisted snapshot of a loadout. Items are
// stored as plain data, never as live references to a session.
type Checklist struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Items     []Item    `json:"items" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Clone returns a deep copy of the checklist.
func (c Checklist) Clone() Checklist {
	out := c
	out.Items = CloneItems(c.Items)
	return out
}
