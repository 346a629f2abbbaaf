// Package repository provides persistence for the catalog store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/johnnie2785/comedogenic-tester/internal/catalog"
	"github.com/johnnie2785/comedogenic-tester/internal/domain"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// SQLStore implements domain.CatalogStore using database/sql.
// Works with both SQLite and PostgreSQL drivers.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// New creates a new catalog store based on configuration.
func New(cfg domain.RepositoryConfig) (domain.CatalogStore, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case "sqlite":
		db, err = openSQLite(cfg)
	case "postgres":
		db, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	store := &SQLStore{
		db:     db,
		driver: cfg.Driver,
	}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (s *SQLStore) migrate() error {
	for _, schema := range AllSchemas() {
		if _, err := s.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// SaveEntry upserts a catalog entry keyed by its normalized name.
// A new entry takes the next position so insertion order survives
// round trips through the store.
func (s *SQLStore) SaveEntry(ctx context.Context, entry *domain.CatalogEntry) error {
	if entry == nil || entry.Name == "" {
		return fmt.Errorf("%w: entry name is required", ErrInvalidInput)
	}

	normalized := catalog.Normalize(entry.Name)
	if normalized == "" {
		return fmt.Errorf("%w: name normalizes to empty", ErrInvalidInput)
	}

	query := `
		INSERT INTO catalog_entries (
			normalized_name, name, score, synonyms, category, notes, position, updated_at
		) VALUES (?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM catalog_entries), ?)
		ON CONFLICT(normalized_name) DO UPDATE SET
			name = excluded.name,
			score = excluded.score,
			synonyms = excluded.synonyms,
			category = excluded.category,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		normalized, entry.Name, entry.Score,
		entry.Synonyms, entry.Category, entry.Notes,
		time.Now().UTC(),
	)
	return err
}

// GetEntry retrieves a catalog entry by normalized name.
func (s *SQLStore) GetEntry(ctx context.Context, normalized string) (*domain.CatalogEntry, error) {
	if normalized == "" {
		return nil, fmt.Errorf("%w: normalized name is required", ErrInvalidInput)
	}

	query := `
		SELECT name, score, synonyms, category, notes
		FROM catalog_entries
		WHERE normalized_name = ?
	`

	var entry domain.CatalogEntry
	var synonyms, category, notes sql.NullString

	err := s.db.QueryRowContext(ctx, s.rebind(query), normalized).Scan(
		&entry.Name, &entry.Score, &synonyms, &category, &notes,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	entry.Synonyms = synonyms.String
	entry.Category = category.String
	entry.Notes = notes.String

	return &entry, nil
}

// ListEntries retrieves all catalog entries in insertion order.
// The order matters: partial-match resolution is first-match-wins.
func (s *SQLStore) ListEntries(ctx context.Context) ([]*domain.CatalogEntry, error) {
	query := `
		SELECT name, score, synonyms, category, notes
		FROM catalog_entries
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.CatalogEntry
	for rows.Next() {
		var entry domain.CatalogEntry
		var synonyms, category, notes sql.NullString

		if err := rows.Scan(&entry.Name, &entry.Score, &synonyms, &category, &notes); err != nil {
			return nil, err
		}

		entry.Synonyms = synonyms.String
		entry.Category = category.String
		entry.Notes = notes.String
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// ReplaceEntries atomically swaps the whole table for the given entries,
// numbering positions by slice order. Used by CSV import and reload.
func (s *SQLStore) ReplaceEntries(ctx context.Context, entries []*domain.CatalogEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_entries`); err != nil {
		return err
	}

	insert := s.rebind(`
		INSERT INTO catalog_entries (
			normalized_name, name, score, synonyms, category, notes, position, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(normalized_name) DO UPDATE SET
			name = excluded.name,
			score = excluded.score,
			synonyms = excluded.synonyms,
			category = excluded.category,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`)

	now := time.Now().UTC()
	position := 0
	for _, entry := range entries {
		normalized := catalog.Normalize(entry.Name)
		if normalized == "" {
			continue
		}
		position++
		if _, err := tx.ExecContext(ctx, insert,
			normalized, entry.Name, entry.Score,
			entry.Synonyms, entry.Category, entry.Notes,
			position, now,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveModifier upserts a custom modifier rule.
func (s *SQLStore) SaveModifier(ctx context.Context, cfg *domain.ModifierConfig) error {
	if cfg == nil || cfg.ID == "" {
		return fmt.Errorf("%w: modifier id is required", ErrInvalidInput)
	}

	enabled := 0
	if cfg.Enabled {
		enabled = 1
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO modifier_configs (
			id, name, description, expression, factor, note, enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			expression = excluded.expression,
			factor = excluded.factor,
			note = excluded.note,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		cfg.ID, cfg.Name, cfg.Description,
		cfg.Expression, cfg.Factor, cfg.Note, enabled,
		now, now,
	)
	return err
}

// GetModifier retrieves a modifier rule by ID.
func (s *SQLStore) GetModifier(ctx context.Context, id string) (*domain.ModifierConfig, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: modifier id is required", ErrInvalidInput)
	}

	query := `
		SELECT id, name, description, expression, factor, note, enabled
		FROM modifier_configs
		WHERE id = ?
	`

	var cfg domain.ModifierConfig
	var description sql.NullString
	var enabled int

	err := s.db.QueryRowContext(ctx, s.rebind(query), id).Scan(
		&cfg.ID, &cfg.Name, &description,
		&cfg.Expression, &cfg.Factor, &cfg.Note, &enabled,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cfg.Description = description.String
	cfg.Enabled = enabled == 1

	return &cfg, nil
}

// ListModifiers retrieves all modifier rules ordered by ID.
func (s *SQLStore) ListModifiers(ctx context.Context) ([]*domain.ModifierConfig, error) {
	query := `
		SELECT id, name, description, expression, factor, note, enabled
		FROM modifier_configs
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.ModifierConfig
	for rows.Next() {
		var cfg domain.ModifierConfig
		var description sql.NullString
		var enabled int

		if err := rows.Scan(
			&cfg.ID, &cfg.Name, &description,
			&cfg.Expression, &cfg.Factor, &cfg.Note, &enabled,
		); err != nil {
			return nil, err
		}

		cfg.Description = description.String
		cfg.Enabled = enabled == 1
		configs = append(configs, &cfg)
	}

	return configs, rows.Err()
}

// Ping checks database connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}

	var result []byte
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, fmt.Sprintf("%d", n)...)
			n++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}
