// Package config provides configuration management for the reminders tool.
//
// Config file locations (priority order):
//  1. $REMINDERS_CONFIG
//  2. ./reminders.yaml
//  3. $XDG_CONFIG_HOME/reminders/config.yaml
//  4. ~/.config/reminders/config.yaml
//  5. /etc/reminders/config.yaml
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultDatabasePath = "./reminders.db"
	defaultBusyTimeout  = 5 * time.Second
	defaultLogLevel     = "INFO"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	timeout := Duration(defaultBusyTimeout)
	return &Config{
		Version: 1,
		Database: DatabaseConfig{
			Backend:     BackendSQLite,
			Path:        defaultDatabasePath,
			BusyTimeout: &timeout,
		},
		Log: LogConfig{Level: defaultLogLevel},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Backend == "" {
		c.Database.Backend = BackendSQLite
	}
	c.Database.Backend = Backend(strings.ToLower(string(c.Database.Backend)))
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Database.BusyTimeout == nil {
		timeout := Duration(defaultBusyTimeout)
		c.Database.BusyTimeout = &timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	c.Log.Level = strings.ToUpper(c.Log.Level)
}

// Validate rejects settings no backend can honour
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown database backend %q", c.Database.Backend)
	}
	if c.Database.BusyTimeout != nil && c.Database.BusyTimeout.Duration() < 0 {
		return fmt.Errorf("busy_timeout must not be negative")
	}
	return nil
}

// Overrides carries command-line values that win over the file
type Overrides struct {
	Backend  string
	Path     string
	Snapshot string
	LogLevel string
}

// Apply merges non-empty overrides and re-validates
func (c *Config) Apply(o Overrides) error {
	if o.Backend != "" {
		c.Database.Backend = Backend(o.Backend)
	}
	if o.Path != "" {
		c.Database.Path = o.Path
	}
	if o.Snapshot != "" {
		c.Database.Snapshot = o.Snapshot
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	c.applyDefaults()
	return c.Validate()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	switch c.Database.Backend {
	case BackendMemory:
		snapshot := c.Database.Snapshot
		if snapshot == "" {
			snapshot = "none"
		}
		return fmt.Sprintf("Backend: memory, Snapshot: %s, Log: %s", snapshot, c.Log.Level)
	default:
		return fmt.Sprintf("Backend: sqlite, Path: %s, Busy timeout: %s, Log: %s",
			c.Database.Path, c.Database.BusyTimeout.Duration(), c.Log.Level)
	}
}
