package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nhle/opsloadout/internal/errors"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
)

const eagerFixture = `{
  "urban-evasion": {
    "name": "Urban Evasion",
    "name_ja": "都市型脱出",
    "category": "evasion",
    "items": [
      {"id": "p-1", "name": "Bolt cutters", "category": "Tools", "weight_g": 1800},
      {"id": "p-2", "name": "Road flare", "category": "Signaling", "weight_g": 150}
    ]
  },
  "minimal-edc": {
    "name": "Minimal EDC",
    "category": "edc",
    "items": [
      {"id": "p-3", "name": "Pen", "category": "Admin", "weight_g": 20}
    ]
  }
}`

const indexFixture = `{
  "urban-evasion": {
    "category": "evasion",
    "name": "Urban Evasion",
    "name_ja": "都市型脱出",
    "item_count": 2,
    "file": "urban-evasion.json"
  },
  "minimal-edc": {
    "category": "edc",
    "name": "Minimal EDC",
    "item_count": 1,
    "file": "minimal-edc.json"
  },
  "broken": {
    "category": "hacker",
    "name": "Broken",
    "item_count": 0,
    "file": "does-not-exist.json"
  }
}`

const payloadFixture = `{
  "name": "Urban Evasion",
  "name_ja": "都市型脱出",
  "category": "evasion",
  "items": [
    {"id": "p-1", "name": "Bolt cutters", "category": "Tools", "weight_g": 1800},
    {"id": "p-2", "name": "Road flare", "category": "Signaling", "weight_g": 150}
  ]
}`

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newEagerCatalog(t *testing.T) *Eager {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "presets.json", eagerFixture)
	c, err := NewEager(model.CatalogConfig{Dir: dir}, i18n.LangEN)
	require.NoError(t, err)
	return c
}

func newLazyCatalog(t *testing.T) (*Lazy, string) {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "index.json", indexFixture)
	writeFixture(t, dir, "urban-evasion.json", payloadFixture)
	c, err := NewLazy(model.CatalogConfig{Dir: dir}, i18n.LangEN)
	require.NoError(t, err)
	return c, dir
}

func TestEagerResolve(t *testing.T) {
	c := newEagerCatalog(t)

	p, err := c.Resolve(context.Background(), "urban-evasion")
	require.NoError(t, err)
	assert.Equal(t, "Urban Evasion", p.Name)
	assert.Equal(t, model.CategoryEvasion, p.Category)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "p-1", p.Items[0].ID)
	assert.Equal(t, 1, p.Items[0].Quantity, "payload items normalize on resolve")
}

func TestEagerResolveUnknownKey(t *testing.T) {
	c := newEagerCatalog(t)

	_, err := c.Resolve(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestEagerResolveReturnsFreshCopies(t *testing.T) {
	c := newEagerCatalog(t)
	ctx := context.Background()

	first, err := c.Resolve(ctx, "urban-evasion")
	require.NoError(t, err)
	first.Items[0].Name = "changed"
	first.Items[0].Checked = true

	second, err := c.Resolve(ctx, "urban-evasion")
	require.NoError(t, err)
	assert.Equal(t, "Bolt cutters", second.Items[0].Name)
	assert.False(t, second.Items[0].Checked)
}

func TestEagerListByCategory(t *testing.T) {
	c := newEagerCatalog(t)

	all := c.ListByCategory("all")
	require.Len(t, all, 2)
	assert.Equal(t, "urban-evasion", all[0].Key, "evasion sorts before edc")
	assert.Equal(t, "minimal-edc", all[1].Key)
	assert.Equal(t, 2, all[0].ItemCount)

	edc := c.ListByCategory("edc")
	require.Len(t, edc, 1)
	assert.Equal(t, "minimal-edc", edc[0].Key)

	assert.Empty(t, c.ListByCategory("disaster"))
}

func TestEagerMissingFile(t *testing.T) {
	_, err := NewEager(model.CatalogConfig{Dir: t.TempDir()}, i18n.LangEN)
	require.Error(t, err)
}

func TestLazyResolveFetchesAndCaches(t *testing.T) {
	c, dir := newLazyCatalog(t)
	ctx := context.Background()

	p, err := c.Resolve(ctx, "urban-evasion")
	require.NoError(t, err)
	assert.Equal(t, "Urban Evasion", p.Name)
	require.Len(t, p.Items, 2)

	// A second resolve works from the cache even after the payload
	// file disappears.
	require.NoError(t, os.Remove(filepath.Join(dir, "urban-evasion.json")))

	again, err := c.Resolve(ctx, "urban-evasion")
	require.NoError(t, err)
	assert.Equal(t, p.Items[0].ID, again.Items[0].ID)
}

func TestLazyFailedFetchIsNotCached(t *testing.T) {
	c, _ := newLazyCatalog(t)
	ctx := context.Background()

	_, err := c.Resolve(ctx, "broken")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeLoad))

	c.mu.Lock()
	_, cached := c.cache["broken"]
	c.mu.Unlock()
	assert.False(t, cached, "a failed fetch must leave the cache untouched")
}

func TestLazyResolveUnknownKey(t *testing.T) {
	c, _ := newLazyCatalog(t)

	_, err := c.Resolve(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestLazyListUsesIndexOnly(t *testing.T) {
	c, _ := newLazyCatalog(t)

	all := c.ListByCategory("all")
	require.Len(t, all, 3)
	assert.Equal(t, "urban-evasion", all[0].Key)
	assert.Equal(t, "minimal-edc", all[1].Key)
	assert.Equal(t, "broken", all[2].Key)

	c.mu.Lock()
	assert.Empty(t, c.cache, "listing must not load payloads")
	c.mu.Unlock()
}

func TestLazyJapaneseDisplayNames(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "index.json", indexFixture)
	c, err := NewLazy(model.CatalogConfig{Dir: dir}, i18n.LangJA)
	require.NoError(t, err)

	all := c.ListByCategory("evasion")
	require.Len(t, all, 1)
	assert.Equal(t, "都市型脱出", all[0].DisplayName)
}

func TestOpenFallsBackToEmptyPreset(t *testing.T) {
	// Nothing to load from an empty directory; Open degrades instead
	// of failing.
	c := Open(model.CatalogConfig{Strategy: model.CatalogStrategyLazy, Dir: t.TempDir()}, i18n.LangEN)
	require.NotNil(t, c)

	entries := c.ListByCategory("all")
	require.Len(t, entries, 1)
	assert.Equal(t, "empty", entries[0].Key)

	p, err := c.Resolve(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, p.Items)
}

func TestResolveHonorsCancelledContext(t *testing.T) {
	c := newEagerCatalog(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Resolve(ctx, "urban-evasion")
	assert.ErrorIs(t, err, context.Canceled)
}
