// ABOUTME: CheckingIn configuration from a JSON file, .env, and environment.
// ABOUTME: Resolves data paths and opens the SQLite store.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env"
	"github.com/harperreed/checkingin/internal/storage"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvUser         = "CHECKINGIN_USER"
	EnvDataDir      = "CHECKINGIN_DATA_DIR"
	EnvModel        = "CHECKINGIN_MODEL"
	EnvLookbackDays = "CHECKINGIN_LOOKBACK_DAYS"
)

// envOverrides mirrors the Env* variables; unset fields leave the file value alone.
type envOverrides struct {
	APIKey       string `env:"GEMINI_API_KEY"`
	User         string `env:"CHECKINGIN_USER"`
	DataDir      string `env:"CHECKINGIN_DATA_DIR"`
	Model        string `env:"CHECKINGIN_MODEL"`
	LookbackDays int    `env:"CHECKINGIN_LOOKBACK_DAYS"`
}

// Config stores checkingin configuration.
type Config struct {
	// DataDir is the root directory for the database and logs.
	// Supports ~ expansion. Defaults to ~/.local/share/checkingin.
	DataDir string `json:"data_dir,omitempty"`

	// User is the user ID records are stored under.
	User string `json:"user,omitempty"`

	// GeminiModel selects the vision model.
	GeminiModel string `json:"gemini_model,omitempty"`

	// LookbackDays is the insights window in days.
	LookbackDays int `json:"lookback_days,omitempty"`

	// APIKey is only ever read from the environment.
	APIKey string `json:"-"`
}

// Keys lists the settings `config set` accepts.
var Keys = []string{"data_dir", "user", "gemini_model", "lookback_days"}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUser returns the configured user, defaulting to "default".
func (c *Config) GetUser() string {
	if c.User == "" {
		return "default"
	}
	return c.User
}

// DBPath returns the database file location.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), storage.DBFileName)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite database under the data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(c.DBPath())
}

// Set assigns a setting by its JSON key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "user":
		c.User = value
	case "gemini_model":
		c.GeminiModel = value
	case "lookback_days":
		days, err := strconv.Atoi(value)
		if err != nil || days < 1 {
			return fmt.Errorf("lookback_days must be a positive integer, got %q", value)
		}
		c.LookbackDays = days
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "checkingin", "config.json")
}

// Load reads the config file, then applies environment overrides.
// A .env file in the working directory is loaded first if present;
// variables already set in the environment win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads only the config file, ignoring .env and the environment.
func LoadFile() (*Config, error) {
	return loadFile(GetConfigPath())
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	var e envOverrides
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	c.APIKey = e.APIKey
	if e.User != "" {
		c.User = e.User
	}
	if e.DataDir != "" {
		c.DataDir = e.DataDir
	}
	if e.Model != "" {
		c.GeminiModel = e.Model
	}
	if e.LookbackDays > 0 {
		c.LookbackDays = e.LookbackDays
	}
	return nil
}

// Save writes config to disk. The API key is never written.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
