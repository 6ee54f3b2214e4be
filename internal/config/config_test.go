package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, BackendSQLite, cfg.Database.Backend)
	assert.Equal(t, "./reminders.db", cfg.Database.Path)
	require.NotNil(t, cfg.Database.BusyTimeout)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout.Duration())
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Backend = BackendMemory
	cfg.Database.Snapshot = "/var/lib/reminders/snapshot.json"
	timeout := Duration(2 * time.Second)
	cfg.Database.BusyTimeout = &timeout
	cfg.Log.File = "/tmp/reminders.log"

	require.NoError(t, cfg.Save(configPath))

	loaded, path, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)
	assert.Equal(t, cfg, loaded)
}

func TestLoadAppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log:\n  level: debug\n"), 0644))

	cfg, _, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Database.Backend)
	assert.Equal(t, "./reminders.db", cfg.Database.Path)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "database:\n  backend: redis\n"},
		{"bad duration", "database:\n  busy_timeout: soon\n"},
		{"negative duration", "database:\n  busy_timeout: -1s\n"},
		{"not yaml", "database: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0644))

			_, _, err := LoadFromPath(configPath)
			assert.Error(t, err)
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Apply(Overrides{Backend: "MEMORY", Snapshot: "s.yaml", LogLevel: "warn"}))

	assert.Equal(t, BackendMemory, cfg.Database.Backend)
	assert.Equal(t, "s.yaml", cfg.Database.Snapshot)
	assert.Equal(t, "./reminders.db", cfg.Database.Path, "empty override keeps file value")
	assert.Equal(t, "WARN", cfg.Log.Level)

	assert.Error(t, cfg.Apply(Overrides{Backend: "bolt"}))
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "Backend: sqlite, Path: ./reminders.db, Busy timeout: 5s, Log: INFO", cfg.Summary())

	cfg.Database.Backend = BackendMemory
	assert.Equal(t, "Backend: memory, Snapshot: none, Log: INFO", cfg.Summary())
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	cwdConfig := filepath.Join(tmpDir, ConfigFileName)
	require.NoError(t, DefaultConfig().Save(cwdConfig))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { os.Chdir(oldWd) })

	// Working directory
	found := FindConfigPath()
	resolved, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(cwdConfig)
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	assert.NotEmpty(t, FindConfigPath())

	// Explicit path exists, wins
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, DefaultConfig().Save(explicit))
	t.Setenv(EnvConfigPath, explicit)
	assert.Equal(t, explicit, FindConfigPath())
}

func TestLoadWithoutConfigReturnsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(oldWd) })

	if fileExists(filepath.Join("/etc", ConfigDirName, "config.yaml")) {
		t.Skip("system-wide config present")
	}

	cfg, path, err := Load()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)
	assert.Equal(t, 5*time.Minute, d.Duration())

	marshaled, err := d.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "5m0s", marshaled)
}
