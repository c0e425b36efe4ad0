// Package config loads attestlint settings from ~/.attestlint/config.yaml
// and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color modes accepted by output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// GlobalConfig holds settings from ~/.attestlint/config.yaml.
type GlobalConfig struct {
	Debug  DebugConfig  `yaml:"debug"`
	Output OutputConfig `yaml:"output"`
}

// DebugConfig controls the optional debug log file.
type DebugConfig struct {
	// LogDir is where daily JSONL debug logs are written. Empty disables
	// the debug log file.
	LogDir string `yaml:"log_dir"`
	// RetentionDays is how long old debug logs are kept (0 = forever).
	RetentionDays int `yaml:"retention_days"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color string `yaml:"color"`
}

// DefaultGlobalConfig returns the default configuration.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Debug: DebugConfig{
			RetentionDays: 14,
		},
		Output: OutputConfig{
			Color: ColorAuto,
		},
	}
}

// LoadGlobal reads ~/.attestlint/config.yaml over the defaults and applies
// environment overrides. A missing file is not an error; a malformed one is.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	configPath := filepath.Join(GlobalConfigDir(), "config.yaml")
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return DefaultGlobalConfig(), fmt.Errorf("parsing %s: %w", configPath, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading %s: %w", configPath, err)
	}

	if dir := os.Getenv("ATTESTLINT_DEBUG_LOG_DIR"); dir != "" {
		cfg.Debug.LogDir = dir
	}
	if daysStr := os.Getenv("ATTESTLINT_DEBUG_RETENTION_DAYS"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil {
			cfg.Debug.RetentionDays = days
		}
	}
	if color := os.Getenv("ATTESTLINT_COLOR"); color != "" {
		cfg.Output.Color = strings.ToLower(color)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks settings that have a fixed set of values.
func (c *GlobalConfig) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Output.Color)
	}
	if c.Debug.RetentionDays < 0 {
		return fmt.Errorf("debug.retention_days must not be negative, got %d", c.Debug.RetentionDays)
	}
	return nil
}

// GlobalConfigDir returns the path to ~/.attestlint.
func GlobalConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".attestlint")
	}
	return filepath.Join(homeDir, ".attestlint")
}
