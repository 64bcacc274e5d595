// Package config handles configuration loading and validation for fmq.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Output format names accepted by `fmq filter --format` and the config file.
const (
	FormatTable = "table"
	FormatPaths = "paths"
	FormatJSON  = "json"
)

// Color modes for styled output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the application configuration.
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Output OutputConfig `yaml:"output"`
}

// ScanConfig controls note discovery and parsing.
type ScanConfig struct {
	// Extensions lists file extensions (without dot) treated as notes.
	Extensions []string `yaml:"extensions"`
	// Workers bounds the parallel parse fan-out.
	Workers int `yaml:"workers"`
}

// OutputConfig controls default rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // table, paths, json
	Color  string `yaml:"color"`  // auto, always, never
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Scan: ScanConfig{
			Extensions: []string{"md"},
			Workers:    4,
		},
		Output: OutputConfig{
			Format: FormatTable,
			Color:  ColorAuto,
		},
	}
}

// Load reads configuration from the given path. A missing file is not an
// error: defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = defaults.Scan.Extensions
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = defaults.Scan.Workers
	}
	if c.Output.Format == "" {
		c.Output.Format = defaults.Output.Format
	}
	if c.Output.Color == "" {
		c.Output.Color = defaults.Output.Color
	}
}
