package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables that override the config file.
const (
	EnvStorageBackend = "LTODO_STORAGE_BACKEND"
	EnvStorageDSN     = "LTODO_STORAGE_DSN"
)

// Load builds a Config for configDir, applying config.toml when present and
// then environment overrides.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := loadConfigFile(cfg, cfg.FilePath()); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile decodes TOML over the defaults already in cfg.
// A missing file is not an error.
func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvStorageBackend); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv(EnvStorageDSN); v != "" {
		cfg.Storage.DSN = v
	}
}

// Validate checks the storage settings.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	case BackendMySQL:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage backend mysql requires a dsn")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		c.Storage.Key = DefaultKey
	}
	return nil
}
