// Package config provides configuration management for GNtree.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use GNTREE_ prefix with underscores for nesting:
//
//	GNTREE_DATABASE_ENGINE=sqlite
//	GNTREE_DATABASE_PATH=taxonomy.db
//	GNTREE_TREE_ROOT_ID=1
//	GNTREE_LOG_LEVEL=info
package config

import (
	"runtime"

	"github.com/gnames/gntree/pkg/taxa"
)

// Config represents the complete GNtree configuration.
type Config struct {
	// Database contains storage engine settings for both the embedded
	// SQLite backend and the PostgreSQL backend.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Tree contains lineage encoding settings.
	Tree TreeConfig `mapstructure:"tree" yaml:"tree"`

	// Fetch contains settings for acquiring the source dataset.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for the lineage
	// construction phase. Default is the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`
}

// DatabaseConfig contains storage backend parameters.
type DatabaseConfig struct {
	// Engine selects the storage backend.
	// Valid values: "sqlite", "postgres".
	Engine string `mapstructure:"engine" yaml:"engine"`

	// Path is the SQLite database file. Used only when Engine is
	// "sqlite". ":memory:" is accepted for ephemeral stores.
	Path string `mapstructure:"path" yaml:"path"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of records per batch for bulk
	// inserts and lineage updates. Larger batches are faster but use
	// more memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// TreeConfig contains lineage encoding parameters.
type TreeConfig struct {
	// RootID is the id the lineage walk terminates at. NCBI Taxonomy
	// uses 1.
	RootID int `mapstructure:"root_id" yaml:"root_id"`

	// Delimiter separates ids inside stored lineage strings. It must
	// not contain decimal digits or SQL LIKE metacharacters. A store
	// built with one delimiter must not be queried with another; the
	// effective delimiter is persisted with each build and re-derived
	// on reopen.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// FetchConfig contains settings for the dataset fetcher.
type FetchConfig struct {
	// SourceURL is where the taxonomy dump archive comes from. A local
	// file path is accepted in place of a URL.
	SourceURL string `mapstructure:"source_url" yaml:"source_url"`

	// CacheDir is where downloaded archives and extracted dump files
	// are kept between runs.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level" yaml:"level"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Engine:    "sqlite",
			Path:      "taxonomy.db",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gntree",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Tree: TreeConfig{
			RootID:    taxa.DefaultRootID,
			Delimiter: taxa.DefaultDelimiter,
		},
		Fetch: FetchConfig{
			SourceURL: DefaultSourceURL,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
