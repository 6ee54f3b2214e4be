package config

import (
	"time"
)

// Backend selects the reminder store implementation
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds reminder store settings
type DatabaseConfig struct {
	Backend     Backend   `yaml:"backend"`
	Path        string    `yaml:"path"`                   // sqlite file, or ":memory:"
	BusyTimeout *Duration `yaml:"busy_timeout,omitempty"` // sqlite only
	Snapshot    string    `yaml:"snapshot,omitempty"`     // memory only; empty = no persistence
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`          // DEBUG, INFO, WARN, ERROR
	File  string `yaml:"file,omitempty"` // optional JSON log file
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
