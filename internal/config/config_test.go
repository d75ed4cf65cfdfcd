// ABOUTME: Tests for checkingin configuration management.
// ABOUTME: Covers load, save, env overrides, settings, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config and env lookups at a temp dir for one test.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvUser, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvModel, "")
	t.Setenv(EnvLookbackDays, "")
	return tmpDir
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	// GetDataDir with empty DataDir should return storage.DataDir()
	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/checkingin-test"}
	if got := cfg.GetDataDir(); got != "/tmp/checkingin-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/checkingin-test")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/wellness"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "wellness")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestGetUser(t *testing.T) {
	assert.Equal(t, "default", (&Config{}).GetUser())
	assert.Equal(t, "alice", (&Config{User: "alice"}).GetUser())
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/checkingin", filepath.Join(home, "data/checkingin")},
		{"data/checkingin", "data/checkingin"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err, "Load() with no config file should not error")
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.DataDir)
	assert.Empty(t, cfg.User)
	assert.Empty(t, cfg.APIKey)
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)

	cfg := &Config{
		DataDir:      "/tmp/checkingin-data",
		User:         "alice",
		GeminiModel:  "gemini-1.5-flash",
		LookbackDays: 14,
		APIKey:       "secret",
	}
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(GetConfigPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/checkingin-data", loaded.DataDir)
	assert.Equal(t, "alice", loaded.User)
	assert.Equal(t, "gemini-1.5-flash", loaded.GeminiModel)
	assert.Equal(t, 14, loaded.LookbackDays)
	assert.Empty(t, loaded.APIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)

	require.NoError(t, (&Config{User: "alice", DataDir: "/from/file"}).Save())

	t.Setenv(EnvAPIKey, "key-123")
	t.Setenv(EnvUser, "bob")
	t.Setenv(EnvDataDir, "/from/env")
	t.Setenv(EnvLookbackDays, "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, "/from/env", cfg.DataDir)
	assert.Equal(t, 10, cfg.LookbackDays)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLookbackDays, "a week")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	isolate(t)

	require.NoError(t, (&Config{User: "alice"}).Save())
	t.Setenv(EnvUser, "bob")
	t.Setenv(EnvAPIKey, "key-123")

	cfg, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.User)
	assert.Empty(t, cfg.APIKey)
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{User: "alice"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "checkingin")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := isolate(t)

	configDir := filepath.Join(tmpDir, "checkingin")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600))

	_, err := Load()
	assert.Error(t, err, "Expected error for invalid JSON config")
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := isolate(t)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "checkingin", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"data_dir", "~/wellness", false},
		{"user", "alice", false},
		{"gemini_model", "gemini-1.5-flash", false},
		{"lookback_days", "14", false},
		{"lookback_days", "0", true},
		{"lookback_days", "week", true},
		{"backend", "sqlite", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}

	cfg := &Config{}
	require.NoError(t, cfg.Set("lookback_days", "30"))
	assert.Equal(t, 30, cfg.LookbackDays)
}

func TestOpenStorage(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{DataDir: tmpDir}

	db, err := cfg.OpenStorage()
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, filepath.Join(tmpDir, "checkingin.db"), cfg.DBPath())
	if _, err := os.Stat(cfg.DBPath()); os.IsNotExist(err) {
		t.Error("Expected checkingin.db to be created")
	}
}
