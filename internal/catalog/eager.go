package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
)

// eagerFile is the single JSON document holding every preset payload
// keyed by preset key.
const eagerFile = "presets.json"

// Eager is the load-everything-at-startup catalog strategy: one keyed
// map of payloads, resolved by pure lookup.
type Eager struct {
	lang    i18n.Lang
	presets map[string]model.PresetPayload
}

// NewEager reads the full preset map from cfg.Dir/presets.json.
func NewEager(cfg model.CatalogConfig, lang i18n.Lang) (*Eager, error) {
	path := filepath.Join(cfg.Dir, eagerFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset map %s: %w", path, err)
	}

	presets := make(map[string]model.PresetPayload)
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parsing preset map %s: %w", path, err)
	}

	return &Eager{lang: lang, presets: presets}, nil
}

// Resolve looks the key up in the loaded map. The returned preset's
// items are normalized copies of the stored payload.
func (c *Eager) Resolve(ctx context.Context, key string) (model.Preset, error) {
	if err := resolveCtx(ctx); err != nil {
		return model.Preset{}, err
	}

	p, ok := c.presets[key]
	if !ok {
		return model.Preset{}, notFound(key)
	}

	return model.Preset{
		Key:      key,
		Name:     p.Name,
		NameJA:   p.NameJA,
		Category: p.Category,
		Items:    model.NormalizeAll(p.Items),
	}, nil
}

// ListByCategory returns picker entries from the loaded map.
func (c *Eager) ListByCategory(category string) []Entry {
	entries := make([]Entry, 0, len(c.presets))
	for key, p := range c.presets {
		entries = append(entries, Entry{
			Key:         key,
			DisplayName: i18n.Field(p.Name, p.NameJA, c.lang),
			Category:    p.Category,
			ItemCount:   len(p.Items),
		})
	}
	sortEntries(entries)
	return filterCategory(entries, category)
}
