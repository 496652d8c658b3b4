// Package config loads node configuration from an optional JSON file overlaid
// with SIMPLECAST_* environment variables. Environment wins over file, file
// wins over defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Host         string `env:"SIMPLECAST_HOST"          json:"host"`
	Name         string `env:"SIMPLECAST_NAME"          json:"name,omitempty"`
	Listen       string `env:"SIMPLECAST_LISTEN"        json:"listen,omitempty"`
	LogLevel     string `env:"SIMPLECAST_LOG_LEVEL"     json:"log_level,omitempty"`
	RetrySeconds int    `env:"SIMPLECAST_RETRY_SECONDS" json:"retry_seconds,omitempty"`
}

func Default() *Config {
	return &Config{
		Name:         "simplecast",
		LogLevel:     "info",
		RetrySeconds: 20,
	}
}

// Load reads the config file at path when it exists, then applies environment
// overrides. A missing file is not an error; an empty path skips the file
// entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("device host is required")
	}
	if c.RetrySeconds <= 0 {
		return errors.New("retry interval must be positive")
	}
	return nil
}

func (c *Config) RetryInterval() time.Duration {
	return time.Duration(c.RetrySeconds) * time.Second
}
