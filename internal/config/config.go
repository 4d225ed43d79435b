// Package config loads CLI defaults from an optional TOML file and applies
// validation shared by every command.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the runtime configuration of the filebatch CLI.
type Config struct {
	Workers    int     `toml:"workers"`
	Processor  string  `toml:"processor"`
	RateLimit  float64 `toml:"rate_limit"`
	RateBurst  int     `toml:"rate_burst"`
	Retries    int     `toml:"retries"`
	RetryDelay string  `toml:"retry_delay"`
	LogLevel   string  `toml:"log_level"`
	LogFormat  string  `toml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers:   runtime.GOMAXPROCS(0),
		Processor: "lines",
		Retries:   1,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no run could accept.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return errors.New("config: workers must be a positive integer")
	}
	if c.Retries <= 0 {
		return errors.New("config: retries must be at least 1")
	}
	if c.RateLimit < 0 {
		return errors.New("config: rate_limit cannot be negative")
	}
	if _, err := c.ParsedRetryDelay(); err != nil {
		return err
	}
	return nil
}

// ParsedRetryDelay parses the retry_delay duration string. Empty means zero,
// which lets the engine pick its default.
func (c Config) ParsedRetryDelay() (time.Duration, error) {
	if c.RetryDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil {
		return 0, fmt.Errorf("config: retry_delay: %w", err)
	}
	if d < 0 {
		return 0, errors.New("config: retry_delay cannot be negative")
	}
	return d, nil
}
