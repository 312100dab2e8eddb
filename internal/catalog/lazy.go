package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	apperrors "github.com/nhle/opsloadout/internal/errors"
	"github.com/nhle/opsloadout/internal/i18n"
	"github.com/nhle/opsloadout/internal/model"
)

// indexFile is the metadata index mapping preset key to category,
// localized names, item count, and payload file reference.
const indexFile = "index.json"

// Lazy is the metadata-index catalog strategy: the index is loaded at
// startup, payloads are fetched on first resolve and cached by key.
type Lazy struct {
	lang    i18n.Lang
	index   map[string]model.PresetMeta
	fetcher payloadFetcher

	mu    sync.Mutex
	cache map[string]model.PresetPayload
}

// NewLazy loads the metadata index from cfg.Dir (or cfg.BaseURL when
// set) and returns a catalog that fetches payloads on demand.
func NewLazy(cfg model.CatalogConfig, lang i18n.Lang) (*Lazy, error) {
	f := newFetcher(cfg)

	data, err := f.fetch(context.Background(), indexFile)
	if err != nil {
		return nil, fmt.Errorf("loading preset index: %w", err)
	}

	index := make(map[string]model.PresetMeta)
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parsing preset index: %w", err)
	}

	return &Lazy{
		lang:    lang,
		index:   index,
		fetcher: f,
		cache:   make(map[string]model.PresetPayload),
	}, nil
}

// Resolve returns the preset for key, fetching and caching its
// payload on first use. A failed fetch leaves the cache untouched so
// a retry fetches again. Two concurrent resolves of the same uncached
// key may both fetch; the second result simply overwrites the first.
func (c *Lazy) Resolve(ctx context.Context, key string) (model.Preset, error) {
	meta, ok := c.index[key]
	if !ok {
		return model.Preset{}, notFound(key)
	}

	c.mu.Lock()
	payload, cached := c.cache[key]
	c.mu.Unlock()

	if !cached {
		data, err := c.fetcher.fetch(ctx, meta.File)
		if err != nil {
			return model.Preset{}, apperrors.Wrap(apperrors.CodeLoad,
				fmt.Sprintf("loading preset %q", key), err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return model.Preset{}, apperrors.Wrap(apperrors.CodeLoad,
				fmt.Sprintf("parsing preset %q", key), err)
		}

		c.mu.Lock()
		c.cache[key] = payload
		c.mu.Unlock()
	}

	return model.Preset{
		Key:      key,
		Name:     payload.Name,
		NameJA:   payload.NameJA,
		Category: payload.Category,
		Items:    model.NormalizeAll(payload.Items),
	}, nil
}

// ListByCategory returns picker entries from the metadata index alone;
// no payloads are loaded.
func (c *Lazy) ListByCategory(category string) []Entry {
	entries := make([]Entry, 0, len(c.index))
	for key, meta := range c.index {
		entries = append(entries, Entry{
			Key:         key,
			DisplayName: i18n.Field(meta.Name, meta.NameJA, c.lang),
			Category:    meta.Category,
			ItemCount:   meta.ItemCount,
		})
	}
	sortEntries(entries)
	return filterCategory(entries, category)
}

// payloadFetcher retrieves a payload document by its file reference.
type payloadFetcher interface {
	fetch(ctx context.Context, ref string) ([]byte, error)
}

// newFetcher picks HTTP or filesystem access based on configuration.
func newFetcher(cfg model.CatalogConfig) payloadFetcher {
	if cfg.BaseURL != "" {
		return &httpFetcher{
			baseURL: strings.TrimRight(cfg.BaseURL, "/"),
			client:  &http.Client{Timeout: 30 * time.Second},
		}
	}
	return &fileFetcher{dir: cfg.Dir}
}

// fileFetcher reads payload files from the preset directory.
type fileFetcher struct {
	dir string
}

func (f *fileFetcher) fetch(_ context.Context, ref string) ([]byte, error) {
	path := filepath.Join(f.dir, filepath.FromSlash(ref))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// httpFetcher retrieves payload files relative to a base URL.
type httpFetcher struct {
	baseURL string
	client  *http.Client
}

func (f *httpFetcher) fetch(ctx context.Context, ref string) ([]byte, error) {
	url := f.baseURL + "/" + strings.TrimLeft(ref, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
