// Package config loads CLI defaults from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"

	v "github.com/nanojinja/nanojinja/pkg/validator"
)

// Config holds defaults that flags may override.
type Config struct {
	// Logging configuration
	LogLevel string `env:"NANOJINJA_LOG_LEVEL" envDefault:"info"`

	// Default bindings file, used when --values is not given
	ValuesFile string `env:"NANOJINJA_VALUES" envDefault:""`

	// Default binding script, used when --script is not given
	ScriptFile string `env:"NANOJINJA_SCRIPT" envDefault:""`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return v.All(
		v.NotEmpty(c.LogLevel, "NANOJINJA_LOG_LEVEL"),
		v.MatchesAllowed(c.LogLevel, []string{"debug", "info", "warn", "error"}, "NANOJINJA_LOG_LEVEL"),
	)
}
