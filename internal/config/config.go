// Package config loads the YAML configuration of the emergency binary.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wazxo/EmercengyAPP/internal/photo"
)

const (
	defaultDatabase  = "events.db"
	defaultLogLevel  = "info"
	defaultPhotoMode = "all"
)

// Config is the top-level application configuration.
type Config struct {
	// Database is a SQLite path/DSN or a postgres:// URL.
	Database string `yaml:"database"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// OpTimeout bounds each storage call. Zero disables the timeout.
	OpTimeout time.Duration `yaml:"op_timeout"`

	// RefetchAfterWrite re-reads the affected row after insert/update
	// instead of trusting the submitted values.
	RefetchAfterWrite bool `yaml:"refetch_after_write"`

	// PhotoMode is "all" (images and videos) or "images"; any spelling
	// photo.ParseMode accepts is folded to one of those.
	PhotoMode string `yaml:"photo_mode"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database:  defaultDatabase,
		LogLevel:  defaultLogLevel,
		PhotoMode: defaultPhotoMode,
	}
}

// Normalize fills in missing values and folds unknown ones back to defaults.
func (c *Config) Normalize() {
	c.Database = strings.TrimSpace(c.Database)
	if c.Database == "" {
		c.Database = defaultDatabase
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = defaultLogLevel
	}

	if c.OpTimeout < 0 {
		c.OpTimeout = 0
	}

	if m, err := photo.ParseMode(c.PhotoMode); err == nil {
		c.PhotoMode = m.String()
	} else {
		c.PhotoMode = defaultPhotoMode
	}
}

// Load reads configuration from path. An empty path or a missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}
