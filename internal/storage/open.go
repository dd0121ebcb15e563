package storage

import (
	"context"
	"fmt"

	"ltodo/internal/config"
)

// Open returns the Storage selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return NewFileStorage(cfg.DataDir())
	case config.BackendSQLite:
		dsn := cfg.Storage.DSN
		if dsn == "" {
			if err := cfg.EnsureDir(); err != nil {
				return nil, fmt.Errorf("create config directory: %w", err)
			}
			dsn = cfg.DBPath()
		}
		return OpenSQL(ctx, SQLite, dsn)
	case config.BackendMySQL:
		return OpenSQL(ctx, MySQL, cfg.Storage.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
