package editor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/opsloadout/internal/catalog"
	apperrors "github.com/nhle/opsloadout/internal/errors"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
	"github.com/nhle/opsloadout/internal/store"
)

// The fakes must keep tracking the real interfaces.
var (
	_ catalog.Catalog      = (*fakeCatalog)(nil)
	_ store.ChecklistStore = (*fakeStore)(nil)
)

// fakeCatalog serves presets from a fixed map, handing out fresh
// copies the way the real catalog does.
type fakeCatalog struct {
	presets map[string][]model.RawItem
}

func (f *fakeCatalog) Resolve(_ context.Context, key string) (model.Preset, error) {
	raws, ok := f.presets[key]
	if !ok {
		return model.Preset{}, apperrors.Newf(apperrors.CodeNotFound, "preset %q not found", key)
	}
	return model.Preset{
		Key:      key,
		Name:     key,
		Category: model.CategoryEDC,
		Items:    model.NormalizeAll(raws),
	}, nil
}

func (f *fakeCatalog) ListByCategory(string) []catalog.Entry {
	var entries []catalog.Entry
	for key := range f.presets {
		entries = append(entries, catalog.Entry{Key: key, DisplayName: key})
	}
	return entries
}

// fakeStore is an in-memory ChecklistStore with error injection for
// simulating storage failures mid-save.
type fakeStore struct {
	records map[string]model.Checklist
	order   []string
	nextID  int
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]model.Checklist{}}
}

func (f *fakeStore) ListAll(context.Context) ([]model.Checklist, error) {
	out := make([]model.Checklist, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.records[id].Clone())
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*model.Checklist, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeNotFound, "checklist %q not found", id)
	}
	clone := rec.Clone()
	return &clone, nil
}

func (f *fakeStore) Upsert(_ context.Context, c model.Checklist) (model.Checklist, error) {
	if f.failErr != nil {
		err := f.failErr
		f.failErr = nil
		return model.Checklist{}, err
	}
	if c.ID == "" {
		f.nextID++
		c.ID = fmt.Sprintf("cl-%d", f.nextID)
	}
	if _, exists := f.records[c.ID]; !exists {
		f.order = append(f.order, c.ID)
	}
	f.records[c.ID] = c.Clone()
	return c.Clone(), nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	delete(f.records, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func newTestController(t *testing.T) (*Controller, *fakeStore) {
	t.Helper()
	cat := &fakeCatalog{presets: map[string][]model.RawItem{
		"urban-edc": {
			{ID: "p-1", Name: "Flashlight", Category: "Tools", WeightG: 80, VolumeCm3: 60},
			{ID: "p-2", Name: "Notebook", Category: "Admin", WeightG: 40, VolumeCm3: 150},
		},
	}}
	st := newFakeStore()
	return New(cat, st, i18n.LangEN), st
}

func TestNewControllerStartsUnbound(t *testing.T) {
	c, _ := newTestController(t)

	_, bound := c.BoundID()
	assert.False(t, bound)
	assert.False(t, c.IsDirty())
	assert.Empty(t, c.Items())
	assert.Equal(t, "New Checklist", c.Name())
}

func TestLoadPresetUnbindsAndCleans(t *testing.T) {
	c, st := newTestController(t)
	ctx := context.Background()

	// Bind and dirty the session first.
	saved, err := c.Save(ctx, SaveAsNew)
	require.NoError(t, err)
	c.AddItem(model.RawItem{Name: "Extra"})
	require.True(t, c.IsDirty())

	require.NoError(t, c.LoadPreset(ctx, "urban-edc"))

	_, bound := c.BoundID()
	assert.False(t, bound, "loading a preset must unbind the session")
	assert.False(t, c.IsDirty())
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, "urban-edc", c.Name())

	// The old saved record is untouched.
	_, err = st.Get(ctx, saved.ID)
	require.NoError(t, err)
}

func TestLoadPresetFailureLeavesSessionUntouched(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	c.AddItem(model.RawItem{Name: "Keep me"})
	before := c.Items()

	err := c.LoadPreset(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Equal(t, before, c.Items())
	assert.True(t, c.IsDirty())
}

func TestSaveWhileUnboundBindsOnce(t *testing.T) {
	c, st := newTestController(t)
	ctx := context.Background()
	require.NoError(t, c.LoadPreset(ctx, "urban-edc"))

	// While unbound, both modes create exactly one new record.
	for _, mode := range []SaveMode{SaveOverwrite, SaveAsNew} {
		require.NoError(t, c.LoadPreset(ctx, "urban-edc"))
		before := len(st.records)

		saved, err := c.Save(ctx, mode)
		require.NoError(t, err)

		id, bound := c.BoundID()
		assert.True(t, bound)
		assert.Equal(t, saved.ID, id)
		assert.False(t, c.IsDirty())
		assert.Len(t, st.records, before+1)
	}
}

func TestSaveOverwriteReusesBoundID(t *testing.T) {
	c, st := newTestController(t)
	ctx := context.Background()

	first, err := c.Save(ctx, SaveAsNew)
	require.NoError(t, err)

	c.AddItem(model.RawItem{Name: "Paracord"})
	second, err := c.Save(ctx, SaveOverwrite)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, st.records, 1)
	assert.Len(t, st.records[first.ID].Items, 1)
}

func TestSaveAsNewLeavesOriginalUntouched(t *testing.T) {
	c, st := newTestController(t)
	ctx := context.Background()

	c.AddItem(model.RawItem{Name: "Original"})
	first, err := c.Save(ctx, SaveAsNew)
	require.NoError(t, err)

	c.AddItem(model.RawItem{Name: "Branched"})
	second, err := c.Save(ctx, SaveAsNew)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, st.records, 2)
	assert.Len(t, st.records[first.ID].Items, 1, "save-as-new must not modify the source record")

	id, _ := c.BoundID()
	assert.Equal(t, second.ID, id, "the session rebinds to the new record")
}

func TestSaveFailureLeavesSessionIntact(t *testing.T) {
	c, st := newTestController(t)
	ctx := context.Background()

	first, err := c.Save(ctx, SaveAsNew)
	require.NoError(t, err)
	c.AddItem(model.RawItem{Name: "Unsaved"})

	st.failErr = apperrors.New(apperrors.CodeStorageQuota, "database or disk is full")
	_, err = c.Save(ctx, SaveOverwrite)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageQuota))

	// Identity, dirtiness, and content all survive the failed save.
	id, bound := c.BoundID()
	assert.True(t, bound)
	assert.Equal(t, first.ID, id)
	assert.True(t, c.IsDirty())
	assert.Len(t, c.Items(), 1)

	// A later retry still works.
	_, err = c.Save(ctx, SaveOverwrite)
	require.NoError(t, err)
	assert.False(t, c.IsDirty())
}

func TestLoadSavedBindsAndIsolates(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	c.AddItem(model.RawItem{Name: "Beacon"})
	saved, err := c.Save(ctx, SaveAsNew)
	require.NoError(t, err)

	c.NewChecklist()
	require.NoError(t, c.LoadSaved(ctx, saved.ID))

	id, bound := c.BoundID()
	assert.True(t, bound)
	assert.Equal(t, saved.ID, id)
	assert.False(t, c.IsDirty())

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Beacon", items[0].Name)
	assert.Equal(t, saved.Items[0].ID, items[0].ID, "item ids are preserved across save/load")
}

func TestDeleteSavedResetsBoundSession(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	saved, err := c.Save(ctx, SaveAsNew)
	require.NoError(t, err)

	require.NoError(t, c.DeleteSaved(ctx, saved.ID))

	_, bound := c.BoundID()
	assert.False(t, bound, "deleting the bound record must unbind the session")
	assert.Equal(t, "New Checklist", c.Name())
}

func TestDeleteSavedOtherRecordKeepsSession(t *testing.T) {
	c, st := newTestController(t)
	ctx := context.Background()

	other, err := st.Upsert(ctx, model.Checklist{Name: "other"})
	require.NoError(t, err)

	mine, err := c.Save(ctx, SaveAsNew)
	require.NoError(t, err)
	require.NoError(t, c.DeleteSaved(ctx, other.ID))

	id, bound := c.BoundID()
	assert.True(t, bound)
	assert.Equal(t, mine.ID, id)
}

func TestAddEditDeleteItem(t *testing.T) {
	c, _ := newTestController(t)

	added := c.AddItem(model.RawItem{Name: "Knife", Category: "Tools"})
	require.NotEmpty(t, added.ID)
	assert.True(t, c.IsDirty())

	require.NoError(t, c.EditItem(added.ID, model.RawItem{Name: "Folding knife", Category: "Tools"}))
	got, ok := c.Item(added.ID)
	require.True(t, ok)
	assert.Equal(t, "Folding knife", got.Name)
	assert.Equal(t, added.ID, got.ID, "edit must not change the item id")

	err := c.EditItem("missing", model.RawItem{Name: "x"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	c.SelectItem(added.ID)
	require.NoError(t, c.DeleteItem(added.ID))
	assert.Empty(t, c.Items())
	assert.Empty(t, c.SelectedItemID(), "deleting the selected item clears the selection")
}

func TestEditItemMergesIntoExistingRecord(t *testing.T) {
	c, _ := newTestController(t)

	conceal := 0.7
	added := c.AddItem(model.RawItem{
		Name:           "Burner phone",
		NameJA:         "使い捨て携帯",
		Category:       "Comms",
		CategoryJA:     "通信",
		WeightG:        160,
		Concealability: &conceal,
		Scores:         map[string]float64{"utility": 0.9, "legality_risk": 0.4},
	})
	require.NoError(t, c.ToggleChecked(added.ID))

	// An edit submission carrying only the form's own fields.
	require.NoError(t, c.EditItem(added.ID, model.RawItem{
		Name:     "Prepaid phone",
		NameJA:   "プリペイド携帯",
		Category: "Comms",
		WeightG:  140,
	}))

	got, ok := c.Item(added.ID)
	require.True(t, ok)
	assert.Equal(t, "Prepaid phone", got.Name)
	assert.Equal(t, 140.0, got.WeightG)

	// Everything the submission did not carry survives the edit.
	assert.True(t, got.Checked, "editing must not unpack the item")
	assert.Equal(t, map[string]float64{"utility": 0.9, "legality_risk": 0.4}, got.Scores)
	require.NotNil(t, got.Concealability)
	assert.Equal(t, 0.7, *got.Concealability)
	assert.Equal(t, "通信", got.CategoryJA)
}

func TestEditItemClearsSubmittedCollections(t *testing.T) {
	c, _ := newTestController(t)

	added := c.AddItem(model.RawItem{
		Name:          "Radio scanner",
		LegalityNotes: map[string]string{"DE": "license required"},
		Sources:       []model.Source{{Title: "field manual"}},
	})

	// Emptied but present collections blank the stored ones.
	require.NoError(t, c.EditItem(added.ID, model.RawItem{
		Name:          "Radio scanner",
		LegalityNotes: map[string]string{},
		Sources:       []model.Source{},
	}))

	got, _ := c.Item(added.ID)
	assert.Empty(t, got.LegalityNotes)
	assert.Empty(t, got.Sources)
}

func TestAddItemBlankNameGetsPlaceholder(t *testing.T) {
	c, _ := newTestController(t)
	added := c.AddItem(model.RawItem{Name: "   "})
	assert.Equal(t, "Unnamed", added.Name)
}

func TestRenameValidation(t *testing.T) {
	c, _ := newTestController(t)

	err := c.Rename("  ")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t, "New Checklist", c.Name())

	require.NoError(t, c.Rename("  Border run  "))
	assert.Equal(t, "Border run", c.Name())
}

func TestTotalsCountCheckedItemsTimesQuantity(t *testing.T) {
	c, _ := newTestController(t)

	a := c.AddItem(model.RawItem{Name: "Plate carrier", WeightG: 500, VolumeCm3: 2000})
	c.AddItem(model.RawItem{Name: "Jerry can", WeightG: 1200, VolumeCm3: 5000})

	require.NoError(t, c.ToggleChecked(a.ID))
	totals := c.Totals()
	assert.Equal(t, 500.0, totals.WeightG)
	assert.Equal(t, 2000.0, totals.VolumeCm3)

	require.NoError(t, c.SetQuantity(a.ID, 3))
	totals = c.Totals()
	assert.Equal(t, 1500.0, totals.WeightG)
	assert.Equal(t, 6000.0, totals.VolumeCm3)

	require.NoError(t, c.ToggleChecked(a.ID))
	assert.Equal(t, 0.0, c.Totals().WeightG)
}

func TestSetAllChecked(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.LoadPreset(context.Background(), "urban-edc"))

	c.SetAllChecked(true)
	totals := c.Totals()
	assert.Equal(t, 120.0, totals.WeightG)

	c.SetAllChecked(false)
	assert.Equal(t, 0.0, c.Totals().WeightG)
}

func TestSetQuantityClampsNegative(t *testing.T) {
	c, _ := newTestController(t)
	a := c.AddItem(model.RawItem{Name: "Batteries"})

	require.NoError(t, c.SetQuantity(a.ID, -4))
	got, _ := c.Item(a.ID)
	assert.Equal(t, 0, got.Quantity)
}

func TestItemsAccessorIsIsolated(t *testing.T) {
	c, _ := newTestController(t)
	c.AddItem(model.RawItem{Name: "Compass", Category: "Navigation"})

	items := c.Items()
	items[0].Name = "changed"
	items[0].CategoryTags[0] = "changed"

	fresh := c.Items()
	assert.Equal(t, "Compass", fresh[0].Name)
	assert.Equal(t, "navigation", fresh[0].CategoryTags[0])
}

func TestFilterItems(t *testing.T) {
	c, _ := newTestController(t)
	c.AddItem(model.RawItem{Name: "Crowbar", PurposeShort: "entry tool", DualUse: true})
	c.AddItem(model.RawItem{Name: "Fuel bottle", PurposeShort: "stove fuel", HazardFlag: true})
	c.AddItem(model.RawItem{Name: "Bandage", PurposeShort: "first aid"})

	assert.Len(t, c.FilterItems("", false, false), 3)
	assert.Len(t, c.FilterItems("", true, false), 1)
	assert.Len(t, c.FilterItems("", false, true), 1)

	byName := c.FilterItems("crow", false, false)
	require.Len(t, byName, 1)
	assert.Equal(t, "Crowbar", byName[0].Name)

	byPurpose := c.FilterItems("first aid", false, false)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, "Bandage", byPurpose[0].Name)

	assert.Empty(t, c.FilterItems("crow", false, true))
}

func TestOnChangeFiresOnMutations(t *testing.T) {
	c, _ := newTestController(t)

	var fired int
	c.OnChange(func() { fired++ })

	c.AddItem(model.RawItem{Name: "Gloves"})
	c.NewChecklist()
	assert.Equal(t, 2, fired)
}

func TestInitFallsBackThroughCatalog(t *testing.T) {
	c, _ := newTestController(t)
	ctx := context.Background()

	// Unknown default preset falls back to the first catalog entry.
	c.Init(ctx, "does-not-exist")
	assert.Len(t, c.Items(), 2)

	// An empty catalog falls back to a new checklist.
	empty := New(&fakeCatalog{presets: map[string][]model.RawItem{}}, newFakeStore(), i18n.LangEN)
	empty.Init(ctx, "anything")
	assert.Empty(t, empty.Items())
	assert.Equal(t, "New Checklist", empty.Name())
}
