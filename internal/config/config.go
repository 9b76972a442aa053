// Package config loads server configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Store backend names accepted by STORE.
const (
	StoreSQLite   = "sqlite"
	StoreJSONFile = "jsonfile"
)

// Config holds the server's runtime configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"PORT" envDefault:"8080"`

	// Store selects the persistence backend: sqlite or jsonfile.
	Store string `env:"STORE" envDefault:"sqlite"`

	// DBPath is the SQLite database file (sqlite backend).
	DBPath string `env:"DB_PATH" envDefault:"./data/splitsmart.db"`

	// DataFile is the JSON snapshot file (jsonfile backend).
	DataFile string `env:"DATA_FILE" envDefault:"./data/splitsmart.json"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.Store != StoreSQLite && cfg.Store != StoreJSONFile {
		return Config{}, fmt.Errorf("unknown STORE %q, want %s or %s", cfg.Store, StoreSQLite, StoreJSONFile)
	}
	return cfg, nil
}
