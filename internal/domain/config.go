package domain

import "time"

// Config holds the complete comedogenic tester configuration.
type Config struct {
	// Server settings for the HTTP shell
	Server ServerConfig `json:"server"`

	// Catalog source settings
	Catalog CatalogConfig `json:"catalog"`

	// Component configurations
	Repository RepositoryConfig `json:"repository"`
	Cache      CacheConfig      `json:"cache"`

	// Observability
	Logging LoggingConfig `json:"logging"`
	Tracing TracingConfig `json:"tracing"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	ReadTimeout  int    `json:"readTimeout"`  // seconds
	WriteTimeout int    `json:"writeTimeout"` // seconds
}

// CatalogConfig holds settings for the external catalog source.
type CatalogConfig struct {
	// CSVPath is the tabular source with columns
	// name, score, synonyms, category, notes. When set, the file is
	// imported into the catalog store at startup. Absence or
	// unreadability is not fatal; the catalog degrades to empty.
	CSVPath string `json:"csvPath"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `json:"enabled"`
	ServiceName string `json:"serviceName"`
}

// DefaultConfig returns the default single-user configuration:
// local sqlite store, in-memory cache, loopback-only HTTP shell.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Catalog: CatalogConfig{
			CSVPath: "./comedogenic_db.csv",
		},
		Repository: RepositoryConfig{
			Driver:     "sqlite",
			SQLitePath: "./comedo.db",
		},
		Cache: CacheConfig{
			Type:         "memory",
			LocalMaxSize: 10000,
			LocalTTL:     5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "comedo",
		},
	}
}
