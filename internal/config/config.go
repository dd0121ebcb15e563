// Package config handles the configuration directory, config file and paths.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "ltodo"

	// FileName is the optional TOML configuration file.
	FileName = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DataDirName holds file-backed storage slots.
	DataDirName = "data"

	// DBFile is the sqlite database filename.
	DBFile = "ltodo.db"

	// DefaultKey is the storage slot holding the task list.
	DefaultKey = "radix-todo-tasks"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	// Backend is one of "file", "sqlite" or "mysql".
	Backend string `toml:"backend"`

	// DSN is the database source name. For sqlite it defaults to DBPath().
	DSN string `toml:"dsn"`

	// Key is the storage slot name.
	Key string `toml:"key"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// New creates a new Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/ltodo or $HOME/.config/ltodo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir: dir,
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     DefaultKey,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to the TOML configuration file.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, FileName)
}

// DataDir returns the directory used by the file storage backend.
func (c *Config) DataDir() string {
	return filepath.Join(c.Dir, DataDirName)
}

// DBPath returns the default sqlite database path.
func (c *Config) DBPath() string {
	return filepath.Join(c.Dir, DBFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
