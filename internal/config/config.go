package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"crowdfund/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// Nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. Use Load to construct a Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). It is attached
	// to the startup log line.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Storage selects the campaign repository backend: memory, postgres or
	// sqlite. Environment variables prefixed with STORAGE_ will populate
	// this struct.
	Storage configs.Storage `envPrefix:"STORAGE_"`

	// Psql configures the PostgreSQL connection used when the storage
	// driver is postgres. Environment variables prefixed with PSQL_ will
	// populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// SQLite configures the database file used when the storage driver is
	// sqlite. Environment variables prefixed with SQLITE_ will populate
	// this struct.
	SQLite configs.SQLite `envPrefix:"SQLITE_"`

	// Auth configures bearer token signing. AUTH_SECRET has no default
	// and Load fails when it is missing or empty.
	Auth configs.Auth `envPrefix:"AUTH_"`

	// Factory holds the address campaign handles are derived from.
	// Environment variables prefixed with FACTORY_ will populate this
	// struct.
	Factory configs.Factory `envPrefix:"FACTORY_"`
}

// Load reads configuration from environment variables into a Config. Fields
// fall back to their defaults when no variable is set, except AUTH_SECRET
// which is required. Parsing and validation failures are returned wrapped.
func Load() (Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Storage.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
