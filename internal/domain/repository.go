package domain

import (
	"context"
	"time"
)

// CatalogStore is the persistence interface for the static lookup table.
// It holds catalog entries and custom modifier rules; analysis results are
// never stored.
type CatalogStore interface {
	// Catalog entry operations
	SaveEntry(ctx context.Context, entry *CatalogEntry) error
	GetEntry(ctx context.Context, normalized string) (*CatalogEntry, error)
	ListEntries(ctx context.Context) ([]*CatalogEntry, error)
	ReplaceEntries(ctx context.Context, entries []*CatalogEntry) error

	// Custom modifier rule operations
	SaveModifier(ctx context.Context, cfg *ModifierConfig) error
	GetModifier(ctx context.Context, id string) (*ModifierConfig, error)
	ListModifiers(ctx context.Context) ([]*ModifierConfig, error)

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// RepositoryConfig holds configuration for catalog store initialization.
type RepositoryConfig struct {
	// Driver is the database driver: "sqlite" or "postgres"
	Driver string

	// SQLite specific
	SQLitePath string

	// PostgreSQL specific
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}
