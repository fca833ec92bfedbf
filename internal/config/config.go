// Package config loads the optional YAML config file. Every field has a
// default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir holds the database and legacy files. Defaults to
	// ~/.config/dayplan.
	DataDir string `yaml:"data_dir"`

	// WeekStart is "monday" or "sunday".
	WeekStart string `yaml:"week_start"`

	FocusMinutes int `yaml:"focus_minutes"`
	BreakMinutes int `yaml:"break_minutes"`

	// LogLevel is "debug", "info" or "error".
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		WeekStart:    "monday",
		FocusMinutes: 25,
		BreakMinutes: 5,
		LogLevel:     "info",
	}
}

// DefaultPath returns ~/.config/dayplan/config.yaml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dayplan", "config.yaml"), nil
}

// Load reads the config at path, filling unset fields with defaults. A
// missing file returns the defaults.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}

	if c.WeekStart != "sunday" {
		c.WeekStart = "monday"
	}
	if c.FocusMinutes <= 0 {
		c.FocusMinutes = 25
	}
	if c.BreakMinutes <= 0 {
		c.BreakMinutes = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c, nil
}

// DBPath returns the database location under the configured data dir, or
// the standard default when no data dir is set.
func (c Config) DBPath() (string, error) {
	if c.DataDir != "" {
		return filepath.Join(c.DataDir, "dayplan.db"), nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dayplan", "dayplan.db"), nil
}

// LegacySessionsPath returns the pre-SQLite session log location under the
// configured data dir.
func (c Config) LegacySessionsPath() (string, error) {
	if c.DataDir != "" {
		return filepath.Join(c.DataDir, "sessions.json"), nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dayplan", "sessions.json"), nil
}
