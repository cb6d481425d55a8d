package api

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	platformobservability "github.com/logitrack/logitrack/internal/platform/observability"
	platformtemporal "github.com/logitrack/logitrack/internal/platform/temporal"
)

const defaultServiceName = "logitrack-api"

// Config carries environment-driven settings for the API process.
type Config struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	PostgresDSN        string        `env:"POSTGRES_DSN"`
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"1m"`

	Temporal      platformtemporal.Settings
	Observability platformobservability.Settings
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = defaultServiceName
	}
	if cfg.CacheSweepInterval <= 0 {
		return Config{}, fmt.Errorf("CACHE_SWEEP_INTERVAL must be a positive duration")
	}
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT must not be empty")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
