// Package catalog resolves preset keys to their item payloads, either
// from a fully loaded preset map or from a metadata index with
// on-demand payload fetching and caching.
package catalog

import (
	"context"
	"log/slog"
	"sort"

	apperrors "github.com/nhle/opsloadout/internal/errors"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
)

// Entry is one row in a preset picker: key plus display metadata.
type Entry struct {
	Key         string
	DisplayName string
	Category    string
	ItemCount   int
}

// Catalog resolves preset keys to ready-to-use presets. Resolve
// always returns a deep copy; mutating the result never affects the
// catalog's stored payloads.
type Catalog interface {
	// Resolve returns the preset for key, or a NOT_FOUND / LOAD_ERROR
	// AppError.
	Resolve(ctx context.Context, key string) (model.Preset, error)

	// ListByCategory returns entries for one category, or for every
	// category grouped in the fixed enumeration order when category
	// is "all". Entries within a category are sorted by key.
	ListByCategory(category string) []Entry
}

// Open builds the catalog named by cfg. If the metadata (or eager
// preset map) cannot be loaded, it degrades to a catalog holding one
// synthetic empty preset so the application stays usable.
func Open(cfg model.CatalogConfig, lang i18n.Lang) Catalog {
	var (
		c   Catalog
		err error
	)
	switch cfg.Strategy {
	case model.CatalogStrategyEager:
		c, err = NewEager(cfg, lang)
	default:
		c, err = NewLazy(cfg, lang)
	}
	if err != nil {
		slog.Warn("preset catalog unavailable, starting with an empty preset",
			"strategy", cfg.Strategy, "error", err)
		return emptyFallback(lang)
	}
	return c
}

// emptyFallback is the degraded catalog used when metadata cannot be
// loaded at startup.
func emptyFallback(lang i18n.Lang) Catalog {
	return &Eager{
		lang: lang,
		presets: map[string]model.PresetPayload{
			"empty": {
				Name:     i18n.T(i18n.LangEN, "msg.newChecklist"),
				NameJA:   i18n.T(i18n.LangJA, "msg.newChecklist"),
				Category: model.CategoryEDC,
				Items:    []model.RawItem{},
			},
		},
	}
}

// notFound builds the error for a missing preset key.
func notFound(key string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "preset %q not found", key)
}

// sortEntries orders entries by the fixed category order, then key.
func sortEntries(entries []Entry) {
	rank := make(map[string]int, len(model.PresetCategories))
	for i, c := range model.PresetCategories {
		rank[c] = i
	}
	sort.Slice(entries, func(i, j int) bool {
		ri, iOK := rank[entries[i].Category]
		rj, jOK := rank[entries[j].Category]
		if !iOK {
			ri = len(rank)
		}
		if !jOK {
			rj = len(rank)
		}
		if ri != rj {
			return ri < rj
		}
		return entries[i].Key < entries[j].Key
	})
}

// filterCategory keeps entries matching category, or all of them when
// category is "all".
func filterCategory(entries []Entry, category string) []Entry {
	if category == "all" || category == "" {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// resolveCtx checks for cancellation before a purely in-memory
// resolve so both strategies honor the context contract.
func resolveCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
