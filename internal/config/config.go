// Package config holds the tilegen command configuration.
//
// Values come from defaults, an optional YAML config file, TILEGEN_
// environment variables and command-line flags, merged by viper.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete tilegen configuration
type Config struct {
	Page      PageConfig      `mapstructure:"page"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Simulate  SimulateConfig  `mapstructure:"simulate"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PageConfig describes the synthetic page being painted
type PageConfig struct {
	// Cols is the page width in tiles
	Cols int `mapstructure:"cols"`
	// Rows is the page height in tiles
	Rows int `mapstructure:"rows"`
	// TileSize is the edge length of one square tile in pixels
	TileSize int `mapstructure:"tile_size"`
}

// GeneratorConfig controls the tile generator
type GeneratorConfig struct {
	// Workers is how many goroutines paint the tiles of one set
	Workers int `mapstructure:"workers"`
	// Labels draws "col,row" on every painted tile
	Labels bool `mapstructure:"labels"`
}

// SimulateConfig controls the scrolling simulation
type SimulateConfig struct {
	// ViewportRows is how many tile rows are visible at once
	ViewportRows int `mapstructure:"viewport_rows"`
	// Steps is the number of scroll steps to simulate
	Steps int `mapstructure:"steps"`
	// ReloadEvery replaces the page with a fresh one every N steps (0 = never)
	ReloadEvery int `mapstructure:"reload_every"`
	// Output is the PNG file the final page is written to (empty = none)
	Output string `mapstructure:"output"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn or error
	Level string `mapstructure:"level"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Page: PageConfig{
			Cols:     8,
			Rows:     32,
			TileSize: 64,
		},
		Generator: GeneratorConfig{
			Workers: 1,
			Labels:  true,
		},
		Simulate: SimulateConfig{
			ViewportRows: 4,
			Steps:        24,
			ReloadEvery:  0,
			Output:       "tilegen.png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers the default configuration with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("page.cols", defaults.Page.Cols)
	v.SetDefault("page.rows", defaults.Page.Rows)
	v.SetDefault("page.tile_size", defaults.Page.TileSize)

	v.SetDefault("generator.workers", defaults.Generator.Workers)
	v.SetDefault("generator.labels", defaults.Generator.Labels)

	v.SetDefault("simulate.viewport_rows", defaults.Simulate.ViewportRows)
	v.SetDefault("simulate.steps", defaults.Simulate.Steps)
	v.SetDefault("simulate.reload_every", defaults.Simulate.ReloadEvery)
	v.SetDefault("simulate.output", defaults.Simulate.Output)

	v.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tilegen")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tilegen"
	}
	return filepath.Join(home, ".config", "tilegen")
}

// SlogLevel returns the configured level as a slog.Level.
// Unknown names map to info; Validate rejects them earlier.
func (c *LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
