// Package config provides application configuration.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the web application's configuration. LLM provider
// settings live in the llm package, which reads its own env variables.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"TUTORLY_ADDR" envDefault:":8080"`

	// DataPath is the JSON progress file location.
	DataPath string `env:"TUTORLY_DATA_PATH" envDefault:"users_data.json"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("TUTORLY_ADDR cannot be empty")
	}
	if c.DataPath == "" {
		return fmt.Errorf("TUTORLY_DATA_PATH cannot be empty")
	}
	return nil
}
