package repository

// Schema definitions for the catalog store.
// Compatible with both SQLite and PostgreSQL.

const schemaCatalogEntries = `
CREATE TABLE IF NOT EXISTS catalog_entries (
    normalized_name TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    score REAL NOT NULL,
    synonyms TEXT,
    category TEXT,
    notes TEXT,
    position INTEGER NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_catalog_entries_position ON catalog_entries(position);
CREATE INDEX IF NOT EXISTS idx_catalog_entries_category ON catalog_entries(category);
`

const schemaModifierConfigs = `
CREATE TABLE IF NOT EXISTS modifier_configs (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    expression TEXT NOT NULL,
    factor REAL NOT NULL,
    note TEXT NOT NULL,
    enabled INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_modifier_configs_enabled ON modifier_configs(enabled);
`

// AllSchemas returns all schema statements in order.
func AllSchemas() []string {
	return []string{
		schemaCatalogEntries,
		schemaModifierConfigs,
	}
}
