// Package config loads harview settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigRelPath = ".harview/config.yaml"

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type PreviewConfig struct {
	MaxBytes int  `yaml:"max_bytes"`
	Images   bool `yaml:"images"`
}

type CacheConfig struct {
	BodyEntries int `yaml:"body_entries"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Preview PreviewConfig `yaml:"preview"`
	Cache   CacheConfig   `yaml:"cache"`
	Export  ExportConfig  `yaml:"export"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
		Preview: PreviewConfig{
			MaxBytes: 1 << 20,
			Images:   true,
		},
		Cache:  CacheConfig{BodyEntries: 64},
		Export: ExportConfig{Dir: "."},
	}
}

// Load reads configPath (default ~/.harview/config.yaml) over the defaults,
// then applies HARVIEW_* environment overrides. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, defaultConfigRelPath)
		}
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Preview.MaxBytes <= 0 {
		return errors.New("preview.max_bytes must be positive")
	}
	if c.Cache.BodyEntries <= 0 {
		return errors.New("cache.body_entries must be positive")
	}
	if strings.TrimSpace(c.Export.Dir) == "" {
		return errors.New("export.dir cannot be empty")
	}
	return nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

func applyEnvOverrides(c *Config) {
	setString(&c.Log.Level, "HARVIEW_LOG_LEVEL")
	setString(&c.Log.File, "HARVIEW_LOG_FILE")
	setInt(&c.Log.MaxSizeMB, "HARVIEW_LOG_MAX_SIZE_MB")
	setInt(&c.Log.MaxBackups, "HARVIEW_LOG_MAX_BACKUPS")
	setInt(&c.Log.MaxAgeDays, "HARVIEW_LOG_MAX_AGE_DAYS")
	setBool(&c.Log.Compress, "HARVIEW_LOG_COMPRESS")
	setInt(&c.Preview.MaxBytes, "HARVIEW_PREVIEW_MAX_BYTES")
	setBool(&c.Preview.Images, "HARVIEW_PREVIEW_IMAGES")
	setInt(&c.Cache.BodyEntries, "HARVIEW_CACHE_BODY_ENTRIES")
	setString(&c.Export.Dir, "HARVIEW_EXPORT_DIR")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
