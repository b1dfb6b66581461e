// Package config loads dsmap settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/roach88/dsmap/internal/mapper"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings shared by every dsmap command.
type Config struct {
	OffsetPolicy string `yaml:"offset_policy"` // local | utc
	Location     string `yaml:"location"`      // IANA zone name, empty = host local
	Database     string `yaml:"database"`      // SQLite file path
	LogLevel     string `yaml:"log_level"`     // debug | info | warn | error
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		OffsetPolicy: mapper.OffsetLocal.String(),
		Database:     "dsmap.db",
		LogLevel:     "info",
	}
}

// Load reads configuration from path.
// If path is empty or doesn't exist, returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills options left blank in the file.
func (c *Config) applyDefaults() {
	defaults := Default()
	if strings.TrimSpace(c.OffsetPolicy) == "" {
		c.OffsetPolicy = defaults.OffsetPolicy
	}
	if strings.TrimSpace(c.Database) == "" {
		c.Database = defaults.Database
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaults.LogLevel
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, err := mapper.ParseOffsetPolicy(c.OffsetPolicy); err != nil {
		return fmt.Errorf("%w: offset_policy: %w", ErrInvalidConfig, err)
	}
	if _, err := c.ResolveLocation(); err != nil {
		return fmt.Errorf("%w: location: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.Database) == "" {
		return fmt.Errorf("%w: database cannot be empty", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ResolveLocation returns the zone used as "local" when decoding.
// An empty location means the host's local zone.
func (c *Config) ResolveLocation() (*time.Location, error) {
	name := strings.TrimSpace(c.Location)
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// MapperOptions translates the config into OffsetDateTimeMapper options.
func (c *Config) MapperOptions() ([]mapper.Option, error) {
	policy, err := mapper.ParseOffsetPolicy(c.OffsetPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: offset_policy: %w", ErrInvalidConfig, err)
	}
	loc, err := c.ResolveLocation()
	if err != nil {
		return nil, fmt.Errorf("%w: location: %w", ErrInvalidConfig, err)
	}
	return []mapper.Option{
		mapper.WithOffsetPolicy(policy),
		mapper.WithLocation(loc),
	}, nil
}
