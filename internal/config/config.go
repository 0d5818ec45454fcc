// Package config reads default flag values from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every variable name.
const Prefix = "ISOFIELDS_"

// Config holds defaults for flags that were not set on the command line.
type Config struct {
	Color    string        `env:"COLOR" envDefault:"auto"`
	Output   string        `env:"OUTPUT" envDefault:"text"`
	Jobs     int           `env:"JOBS" envDefault:"10"`
	NoCache  bool          `env:"NO_CACHE"`
	CacheDir string        `env:"CACHE_DIR"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses environ instead of the process environment. A nil map
// falls back to the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{
		Prefix:      Prefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}
