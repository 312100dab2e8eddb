package editor

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/opsloadout/internal/catalog"
	apperrors "github.com/nhle/opsloadout/internal/errors"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
	"github.com/nhle/opsloadout/internal/store"
)

// SaveMode selects between overwriting the bound checklist and
// creating a new record.
type SaveMode int

const (
	// SaveOverwrite reuses the bound checklist id. While the session
	// is unbound it behaves exactly like SaveAsNew.
	SaveOverwrite SaveMode = iota

	// SaveAsNew always creates a fresh record, leaving any previously
	// bound checklist untouched.
	SaveAsNew
)

// Controller orchestrates the preset catalog, the checklist store,
// and the session. Every public operation either succeeds or returns
// a typed error leaving the session exactly as it was; nothing here
// panics across the UI boundary.
type Controller struct {
	catalog catalog.Catalog
	store   store.ChecklistStore
	lang    i18n.Lang

	session   Session
	listeners []func()
}

// New creates a controller with an empty unbound session.
func New(cat catalog.Catalog, st store.ChecklistStore, lang i18n.Lang) *Controller {
	c := &Controller{
		catalog: cat,
		store:   st,
		lang:    lang,
	}
	c.resetSession()
	return c
}

// OnChange registers a callback invoked after every successful
// session mutation. The render layer subscribes here instead of the
// controller reaching into presentation state.
func (c *Controller) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}

// Init loads the startup session: the configured default preset,
// falling back to the first catalog entry, and finally to an empty
// new checklist when the catalog has nothing at all.
func (c *Controller) Init(ctx context.Context, defaultPreset string) {
	if defaultPreset != "" {
		if err := c.LoadPreset(ctx, defaultPreset); err == nil {
			return
		}
	}
	if entries := c.catalog.ListByCategory("all"); len(entries) > 0 {
		if err := c.LoadPreset(ctx, entries[0].Key); err == nil {
			return
		}
	}
	c.NewChecklist()
}

// === Loading and identity transitions ===

// LoadPreset replaces the session with the named preset's items. The
// session becomes unbound and clean. On failure the current session
// is left untouched.
func (c *Controller) LoadPreset(ctx context.Context, key string) error {
	preset, err := c.catalog.Resolve(ctx, key)
	if err != nil {
		return err
	}

	c.session = Session{
		Name:  i18n.Field(preset.Name, preset.NameJA, c.lang),
		Items: preset.Items,
	}
	c.notify()
	return nil
}

// LoadSaved replaces the session with a saved checklist and binds to
// its id. On failure (e.g. the id was deleted by another process) the
// current session is left untouched.
func (c *Controller) LoadSaved(ctx context.Context, id string) error {
	saved, err := c.store.Get(ctx, id)
	if err != nil {
		return err
	}

	c.session = Session{
		Name:    saved.Name,
		Items:   model.CloneItems(saved.Items),
		BoundID: saved.ID,
	}
	c.notify()
	return nil
}

// NewChecklist resets the session to an empty, unbound checklist with
// the default placeholder name.
func (c *Controller) NewChecklist() {
	c.resetSession()
	c.notify()
}

func (c *Controller) resetSession() {
	c.session = Session{
		Name:  i18n.T(c.lang, "msg.newChecklist"),
		Items: []model.Item{},
	}
}

// === Item mutations ===

// AddItem normalizes the raw record, assigns it a fresh id, and
// appends it. An empty name gets the "Unnamed" placeholder.
func (c *Controller) AddItem(raw model.RawItem) model.Item {
	raw.ID = uuid.New().String()
	it := model.Normalize(raw)
	if strings.TrimSpace(it.Name) == "" {
		it.Name = i18n.T(c.lang, "msg.unnamed")
	}

	c.session.Items = append(c.session.Items, it)
	c.session.Dirty = true
	c.notify()
	return it
}

// EditItem merges the submitted fields into the item with the given
// id. Fields the submission does not carry keep their current values;
// the id and the packed state are immutable through an edit.
func (c *Controller) EditItem(id string, raw model.RawItem) error {
	idx := c.session.itemIndex(id)
	if idx < 0 {
		return apperrors.Newf(apperrors.CodeNotFound, "item %q not found", id)
	}

	it := model.Merge(c.session.Items[idx], raw)
	if strings.TrimSpace(it.Name) == "" {
		it.Name = i18n.T(c.lang, "msg.unnamed")
	}

	c.session.Items[idx] = it
	c.session.Dirty = true
	c.notify()
	return nil
}

// DeleteItem removes an item from the session.
func (c *Controller) DeleteItem(id string) error {
	idx := c.session.itemIndex(id)
	if idx < 0 {
		return apperrors.Newf(apperrors.CodeNotFound, "item %q not found", id)
	}

	c.session.Items = append(c.session.Items[:idx], c.session.Items[idx+1:]...)
	if c.session.SelectedItemID == id {
		c.session.SelectedItemID = ""
	}
	c.session.Dirty = true
	c.notify()
	return nil
}

// ToggleChecked flips an item's packed state.
func (c *Controller) ToggleChecked(id string) error {
	idx := c.session.itemIndex(id)
	if idx < 0 {
		return apperrors.Newf(apperrors.CodeNotFound, "item %q not found", id)
	}

	c.session.Items[idx].Checked = !c.session.Items[idx].Checked
	c.session.Dirty = true
	c.notify()
	return nil
}

// SetAllChecked checks or unchecks every item at once.
func (c *Controller) SetAllChecked(checked bool) {
	for i := range c.session.Items {
		c.session.Items[i].Checked = checked
	}
	c.session.Dirty = true
	c.notify()
}

// SetQuantity updates an item's quantity, clamping negatives to zero.
func (c *Controller) SetQuantity(id string, qty int) error {
	idx := c.session.itemIndex(id)
	if idx < 0 {
		return apperrors.Newf(apperrors.CodeNotFound, "item %q not found", id)
	}
	if qty < 0 {
		qty = 0
	}

	c.session.Items[idx].Quantity = qty
	c.session.Dirty = true
	c.notify()
	return nil
}

// Rename sets the working checklist name. Renaming alone does not
// persist anything.
func (c *Controller) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.New(apperrors.CodeValidation, "checklist name must not be empty")
	}

	c.session.Name = name
	c.session.Dirty = true
	c.notify()
	return nil
}

// SelectItem marks an item for the detail view. Selection is not a
// content mutation and does not dirty the session.
func (c *Controller) SelectItem(id string) {
	c.session.SelectedItemID = id
	c.notify()
}

// === Persistence ===

// Save persists the session as a checklist snapshot. While unbound,
// both modes create exactly one new record; while bound, Overwrite
// reuses the bound id (preserving created_at) and SaveAsNew mints a
// fresh one, leaving the old record untouched. On store failure the
// session's identity and dirty flag are unchanged.
func (c *Controller) Save(ctx context.Context, mode SaveMode) (model.Checklist, error) {
	rec := model.Checklist{
		Name:  c.session.Name,
		Items: model.CloneItems(c.session.Items),
	}
	if mode == SaveOverwrite && c.session.BoundID != "" {
		rec.ID = c.session.BoundID
	}

	saved, err := c.store.Upsert(ctx, rec)
	if err != nil {
		return model.Checklist{}, err
	}

	c.session.BoundID = saved.ID
	c.session.Dirty = false
	c.notify()
	return saved, nil
}

// DeleteSaved removes a stored checklist. If the session was bound to
// it, the session resets to a new checklist, since it cannot stay
// bound to a record that no longer exists.
func (c *Controller) DeleteSaved(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}

	if c.session.BoundID == id {
		c.resetSession()
	}
	c.notify()
	return nil
}

// === Read accessors ===

// Name returns the working checklist name.
func (c *Controller) Name() string { return c.session.Name }

// IsDirty reports whether unsaved mutations exist.
func (c *Controller) IsDirty() bool { return c.session.Dirty }

// BoundID returns the bound checklist id and whether the session is
// bound at all.
func (c *Controller) BoundID() (string, bool) {
	return c.session.BoundID, c.session.BoundID != ""
}

// SelectedItemID returns the detail-view selection, if any.
func (c *Controller) SelectedItemID() string { return c.session.SelectedItemID }

// Items returns a deep copy of the current item list. This is the
// stable accessor exporters and the render layer read from; mutating
// the result never touches the session.
func (c *Controller) Items() []model.Item {
	return model.CloneItems(c.session.Items)
}

// Item returns a copy of a single item by id.
func (c *Controller) Item(id string) (model.Item, bool) {
	idx := c.session.itemIndex(id)
	if idx < 0 {
		return model.Item{}, false
	}
	return c.session.Items[idx].Clone(), true
}

// FilterItems returns copies of the items matching a free-text query
// (name or purpose, localized) and the dual-use / hazard-only flags.
func (c *Controller) FilterItems(query string, dualOnly, hazardOnly bool) []model.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []model.Item
	for i := range c.session.Items {
		it := &c.session.Items[i]
		if dualOnly && !it.DualUse {
			continue
		}
		if hazardOnly && !it.HazardFlag {
			continue
		}
		if q != "" {
			name := strings.ToLower(i18n.Field(it.Name, it.NameJA, c.lang))
			purpose := strings.ToLower(i18n.Field(it.PurposeShort, it.PurposeShortJA, c.lang))
			if !strings.Contains(name, q) && !strings.Contains(purpose, q) {
				continue
			}
		}
		out = append(out, it.Clone())
	}
	return out
}

// Totals returns the checked-items weight and volume sums.
func (c *Controller) Totals() Totals {
	return c.session.totals()
}
