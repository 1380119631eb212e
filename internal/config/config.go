// Package config loads proxy process configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the strapi-proxy configuration.
type Config struct {
	// StrapiURL is the base URL of the content API.
	StrapiURL string `env:"STRAPI_URL"`

	// CacheTTL is the cache lifetime for fetched bodies.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	// RedisAddr is the Redis address; empty selects the in-memory store.
	RedisAddr string `env:"REDIS_ADDR"`

	// Port is the HTTP listen port.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogPretty enables human-readable console logs.
	LogPretty bool `env:"LOG_PRETTY" envDefault:"false"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.StrapiURL == "" {
		return fmt.Errorf("STRAPI_URL is required")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	return nil
}
