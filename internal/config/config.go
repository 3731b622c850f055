// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig; source failures wrap ErrLoadConfig.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ProfilePath points at an optional YAML file overriding the page content.
	ProfilePath string `koanf:"profile_path"`

	// LogCapacity bounds the number of visible simulated log lines.
	LogCapacity int `koanf:"log_capacity"`

	// LogIntervalMS is the period of the log simulator tick.
	LogIntervalMS int `koanf:"log_interval_ms"`

	// LogCatalog replaces the simulated log messages when non-empty.
	LogCatalog []string `koanf:"log_catalog"`

	// StreamBuffer is the per-subscriber buffer of the live log stream.
	StreamBuffer int `koanf:"stream_buffer"`

	// Radar chart geometry.
	RadarRadius      float64   `koanf:"radar_radius"`
	RadarCenterX     float64   `koanf:"radar_center_x"`
	RadarCenterY     float64   `koanf:"radar_center_y"`
	RadarGridLevels  []float64 `koanf:"radar_grid_levels"`
	RadarLabelFactor float64   `koanf:"radar_label_factor"`

	// MaxSkills caps the skills accepted by POST /api/radar.
	MaxSkills int `koanf:"max_skills"`

	// MaxGridLevels caps the grid rings accepted by POST /api/radar.
	MaxGridLevels int `koanf:"max_grid_levels"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		LogCapacity:      5,
		LogIntervalMS:    2500,
		StreamBuffer:     16,
		RadarRadius:      100,
		RadarCenterX:     160,
		RadarCenterY:     160,
		RadarGridLevels:  []float64{25, 50, 75, 100},
		RadarLabelFactor: 1.2,
		MaxSkills:        32,
		MaxGridLevels:    16,
	}
}

// LogInterval returns LogIntervalMS as a duration.
func (c *Config) LogInterval() time.Duration {
	return time.Duration(c.LogIntervalMS) * time.Millisecond
}
