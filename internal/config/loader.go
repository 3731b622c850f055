package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "STATUSFOLIO_"

// listKeys hold comma-separated lists when given through the environment.
var listKeys = map[string]bool{"log_catalog": true, "radar_grid_levels": true}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if STATUSFOLIO_CONFIG is set
//  3. env (prefix STATUSFOLIO_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// STATUSFOLIO_LOG_CAPACITY -> log_capacity (flat keys, underscores kept).
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if listKeys[key] {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Lists from a source replace the defaults instead of merging into them.
	cfg := *base
	if k.Exists("log_catalog") {
		cfg.LogCatalog = nil
	}
	if k.Exists("radar_grid_levels") {
		cfg.RadarGridLevels = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.LogCapacity < 1:
		return fmt.Errorf("%w: log_capacity must be at least 1", ErrInvalidConfig)
	case c.LogIntervalMS < 1:
		return fmt.Errorf("%w: log_interval_ms must be positive", ErrInvalidConfig)
	case c.RadarRadius <= 0:
		return fmt.Errorf("%w: radar_radius must be positive", ErrInvalidConfig)
	case len(c.RadarGridLevels) == 0:
		return fmt.Errorf("%w: radar_grid_levels must not be empty", ErrInvalidConfig)
	case c.MaxSkills < 1:
		return fmt.Errorf("%w: max_skills must be at least 1", ErrInvalidConfig)
	case c.MaxGridLevels < 1:
		return fmt.Errorf("%w: max_grid_levels must be at least 1", ErrInvalidConfig)
	case len(c.RadarGridLevels) > c.MaxGridLevels:
		return fmt.Errorf("%w: radar_grid_levels exceeds max_grid_levels", ErrInvalidConfig)
	}
	return nil
}
