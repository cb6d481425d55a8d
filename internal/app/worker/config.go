package worker

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	platformobservability "github.com/logitrack/logitrack/internal/platform/observability"
	platformtemporal "github.com/logitrack/logitrack/internal/platform/temporal"
)

const defaultServiceName = "logitrack-worker"

// Config carries environment-driven settings for the worker process.
type Config struct {
	PostgresDSN string `env:"POSTGRES_DSN"`

	Temporal      platformtemporal.Settings
	Observability platformobservability.Settings
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = defaultServiceName
	}
	if cfg.Temporal.Disabled {
		return Config{}, fmt.Errorf("the worker cannot run with TEMPORAL_DISABLED set")
	}
	return cfg, nil
}
