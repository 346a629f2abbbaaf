package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/johnnie2785/comedogenic-tester/internal/domain"
)

// Manager owns the current catalog and rebuilds it on demand. Each built
// Catalog stays immutable; Reload swaps the pointer under a short write
// lock, so in-flight analyses keep the snapshot they started with.
type Manager struct {
	mu      sync.RWMutex
	current *Catalog

	store    domain.CatalogStore
	cache    domain.Cache
	cacheTTL time.Duration
	csvPath  string
}

// ManagerConfig wires a Manager. Store, cache, and csvPath are all
// optional: with nothing configured the manager serves an empty catalog.
type ManagerConfig struct {
	Store    domain.CatalogStore
	Cache    domain.Cache
	CacheTTL time.Duration
	CSVPath  string
}

// NewManager builds the initial catalog: the CSV source (when configured
// and readable) is imported into the store, then the catalog is
// constructed from the store's entries. Every failure along the way
// degrades toward an empty catalog; NewManager itself never fails.
func NewManager(ctx context.Context, cfg ManagerConfig) *Manager {
	m := &Manager{
		store:    cfg.Store,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		csvPath:  cfg.CSVPath,
	}

	if err := m.Reload(ctx); err != nil {
		slog.Warn("catalog load failed, starting empty", "error", err)
		m.mu.Lock()
		m.current = New(nil)
		m.mu.Unlock()
	}

	return m
}

// Current returns the active catalog snapshot.
func (m *Manager) Current() *Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Resolve satisfies the scorer's Resolver interface against the current
// snapshot.
func (m *Manager) Resolve(ctx context.Context, query string) *domain.CatalogEntry {
	return m.Current().Resolve(ctx, query)
}

// Len returns the current catalog size.
func (m *Manager) Len() int {
	return m.Current().Len()
}

// Reload re-imports the CSV source (when configured), rebuilds the
// catalog from the store, flushes the resolve cache, and swaps the
// snapshot in.
func (m *Manager) Reload(ctx context.Context) error {
	entries, err := m.loadEntries(ctx)
	if err != nil {
		return err
	}

	var opts []Option
	if m.cache != nil {
		opts = append(opts, WithCache(m.cache, m.cacheTTL))
		if err := m.cache.Flush(ctx); err != nil {
			slog.Warn("resolve cache flush failed", "error", err)
		}
	}

	next := New(entries, opts...)

	m.mu.Lock()
	m.current = next
	m.mu.Unlock()

	slog.Info("catalog loaded", "entries", next.Len())
	return nil
}

func (m *Manager) loadEntries(ctx context.Context) ([]*domain.CatalogEntry, error) {
	if m.csvPath != "" {
		entries, err := LoadCSV(m.csvPath)
		if err != nil {
			slog.Warn("catalog source unreadable", "path", m.csvPath, "error", err)
		} else if m.store != nil {
			if err := m.store.ReplaceEntries(ctx, entries); err != nil {
				slog.Warn("catalog import failed, using file entries directly", "error", err)
				return entries, nil
			}
		} else {
			return entries, nil
		}
	}

	if m.store == nil {
		return nil, nil
	}
	return m.store.ListEntries(ctx)
}
