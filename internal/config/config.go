// Package config loads application configuration from an optional YAML file
// with environment-variable overrides. Environment always wins so a single
// shell export can redirect the app at a staging backend.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration.
type Config struct {
	// Remote is the hosted row store the app syncs against.
	Remote RemoteConfig `yaml:"remote"`

	// UserID identifies whose profile row this install owns.
	UserID string `yaml:"user_id"`

	// DBPath is the local snapshot database location.
	DBPath string `yaml:"db_path"`

	// Strict makes missing remote credentials a startup error instead of
	// degrading to local-only mode.
	Strict bool `yaml:"strict"`

	// LogRemoteCalls enables per-call logging of remote store traffic.
	LogRemoteCalls bool `yaml:"log_remote_calls"`
}

// RemoteConfig holds hosted store connection settings.
type RemoteConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries int    `yaml:"max_retries"`
}

// Default returns a Config with sensible defaults. The remote store is
// unset by default; without credentials the app runs local-only.
func Default() Config {
	return Config{
		Remote: RemoteConfig{
			TimeoutMs:  8000,
			MaxRetries: 1,
		},
	}
}

// Load builds the effective configuration: defaults, then the config file at
// HABITQUEST_CONFIG or ~/.habitquest/config.yaml if present, then environment
// overrides. A missing config file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("HABITQUEST_CONFIG")
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".habitquest", "config.yaml")
		}
	}
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".habitquest", "habitquest.db")
	}

	if cfg.Strict && !cfg.RemoteConfigured() {
		return Config{}, fmt.Errorf("strict mode requires HABITQUEST_REMOTE_URL and HABITQUEST_API_KEY")
	}
	return cfg, nil
}

// RemoteConfigured reports whether enough is set to reach the hosted store.
func (c Config) RemoteConfigured() bool {
	return c.Remote.BaseURL != "" && c.Remote.APIKey != ""
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HABITQUEST_REMOTE_URL"); v != "" {
		cfg.Remote.BaseURL = v
	}
	if v := os.Getenv("HABITQUEST_API_KEY"); v != "" {
		cfg.Remote.APIKey = v
	}
	if v := os.Getenv("HABITQUEST_REMOTE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Remote.TimeoutMs = n
		}
	}
	if v := os.Getenv("HABITQUEST_REMOTE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Remote.MaxRetries = n
		}
	}
	if v := os.Getenv("HABITQUEST_USER_ID"); v != "" {
		cfg.UserID = v
	}
	if v := os.Getenv("HABITQUEST_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("HABITQUEST_STRICT"); v != "" {
		cfg.Strict, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("HABITQUEST_LOG_REMOTE_CALLS"); v != "" {
		cfg.LogRemoteCalls, _ = strconv.ParseBool(v)
	}
}
