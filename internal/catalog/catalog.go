package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/johnnie2785/comedogenic-tester/internal/domain"
)

// Catalog is the immutable lookup table from normalized ingredient name to
// entry. It is built once and never mutated, so concurrent reads need no
// locking. An optional cache short-circuits repeated resolutions.
type Catalog struct {
	entries map[string]*domain.CatalogEntry

	// keys holds normalized names in insertion order. Go maps iterate in
	// random order, so the partial-match fallback walks this slice to keep
	// "first match wins" deterministic.
	keys []string

	cache    domain.Cache
	cacheTTL time.Duration
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithCache attaches a resolve cache. Cache failures are ignored;
// resolution always falls through to the table.
func WithCache(cache domain.Cache, ttl time.Duration) Option {
	return func(c *Catalog) {
		c.cache = cache
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		c.cacheTTL = ttl
	}
}

// New builds a catalog from entries. Names are normalized on insertion;
// when two entries normalize to the same key the last one wins, keeping the
// first key's position. Entries with an empty normalized name are skipped.
func New(entries []*domain.CatalogEntry, opts ...Option) *Catalog {
	c := &Catalog{
		entries: make(map[string]*domain.CatalogEntry, len(entries)),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, e := range entries {
		key := Normalize(e.Name)
		if key == "" {
			continue
		}
		if _, exists := c.entries[key]; !exists {
			c.keys = append(c.keys, key)
		}
		c.entries[key] = e
	}

	return c
}

// Len returns the number of known ingredients.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the catalog entries in insertion order.
func (c *Catalog) Entries() []*domain.CatalogEntry {
	out := make([]*domain.CatalogEntry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.entries[k])
	}
	return out
}

// Resolve maps an arbitrary free-text token to a catalog entry. Resolution
// never fails: exact match first, then the first catalog key (in insertion
// order) that is a substring of the normalized query, and finally a
// synthetic zero-score entry carrying the original token.
func (c *Catalog) Resolve(ctx context.Context, query string) *domain.CatalogEntry {
	key := Normalize(query)

	if cached := c.cacheGet(ctx, key); cached != nil {
		return cached
	}

	entry := c.lookup(key)
	if entry == nil {
		return &domain.CatalogEntry{
			Name:     query,
			Score:    0.0,
			Category: domain.CategoryUnknown,
			Notes:    domain.UnknownNotes,
		}
	}

	c.cacheSet(ctx, key, entry)
	return entry
}

func (c *Catalog) lookup(key string) *domain.CatalogEntry {
	if entry, ok := c.entries[key]; ok {
		return entry
	}
	for _, k := range c.keys {
		if strings.Contains(key, k) {
			return c.entries[k]
		}
	}
	return nil
}

func (c *Catalog) cacheGet(ctx context.Context, key string) *domain.CatalogEntry {
	if c.cache == nil || key == "" {
		return nil
	}
	data, err := c.cache.Get(ctx, "resolve:"+key)
	if err != nil || data == nil {
		return nil
	}
	var entry domain.CatalogEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}
	return &entry
}

func (c *Catalog) cacheSet(ctx context.Context, key string, entry *domain.CatalogEntry) {
	if c.cache == nil || key == "" {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, "resolve:"+key, data, c.cacheTTL); err != nil {
		slog.Debug("resolve cache set failed", "key", key, "error", err)
	}
}
