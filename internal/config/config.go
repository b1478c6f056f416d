package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the service.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"file:pharmatrack.db"`

	// LogFormat selects zap's development ("pretty") or production ("json")
	// encoder.
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// MedicineCatalog optionally points at a CSV catalog seeded at startup.
	MedicineCatalog string `envconfig:"MEDICINE_CATALOG" default:""`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
