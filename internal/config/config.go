// Package config handles loading and managing chatvault configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the chatvault configuration.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Ingest IngestConfig `toml:"ingest"`
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// DataConfig holds data storage configuration.
type DataConfig struct {
	DataDir  string `toml:"data_dir"`
	Database string `toml:"database"` // explicit db path; default <data_dir>/chatvault.db
}

// IngestConfig holds ingestion defaults.
type IngestConfig struct {
	MaxMessages int `toml:"max_messages"` // per-conversation cap; 0 = unlimited
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// ServerConfig holds HTTP API server configuration.
type ServerConfig struct {
	APIPort int    `toml:"api_port"` // HTTP server port (default: 8080)
	APIKey  string `toml:"api_key"`  // API authentication key; empty = auth disabled
}

// DefaultHome returns the default chatvault home directory.
// Respects the CHATVAULT_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("CHATVAULT_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chatvault"
	}
	return filepath.Join(home, ".chatvault")
}

// Load reads the configuration from the specified file. If path is
// empty, the default location (<home>/config.toml) is used, and a
// missing file there just yields defaults. homeOverride, when
// non-empty, replaces the default home directory.
func Load(path, homeOverride string) (*Config, error) {
	homeDir := DefaultHome()
	if homeOverride != "" {
		homeDir = homeOverride
	}

	explicit := path != ""
	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		Data: DataConfig{
			DataDir: homeDir,
		},
		Search: SearchConfig{
			DefaultLimit: 50,
		},
		Server: ServerConfig{
			APIPort: 8080,
		},
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Data.DataDir == "" {
		cfg.Data.DataDir = homeDir
	}

	return cfg, nil
}

// DatabasePath returns the resolved database file path.
func (c *Config) DatabasePath() string {
	if c.Data.Database != "" {
		return c.Data.Database
	}
	return filepath.Join(c.Data.DataDir, "chatvault.db")
}

// ConfigFilePath returns where the config file is expected to live.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.HomeDir, "config.toml")
}

// EnsureHomeDir creates the home directory if it doesn't exist.
func (c *Config) EnsureHomeDir() error {
	return os.MkdirAll(c.HomeDir, 0755)
}
