package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect holds the statements that differ between SQL engines.
type Dialect struct {
	Driver      string
	CreateTable string
	Upsert      string
}

// SQLite stores slots in a sqlite database file (modernc.org/sqlite).
var SQLite = Dialect{
	Driver: "sqlite",
	CreateTable: `
	CREATE TABLE IF NOT EXISTS kv (
		slot TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
	Upsert: `
	INSERT INTO kv (slot, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
}

// MySQL stores slots in a MySQL table (go-sql-driver/mysql).
var MySQL = Dialect{
	Driver: "mysql",
	CreateTable: `
	CREATE TABLE IF NOT EXISTS kv (
		slot VARCHAR(191) PRIMARY KEY,
		value LONGTEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	Upsert: `
	INSERT INTO kv (slot, value, updated_at) VALUES (?, ?, ?)
	ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`,
}

// SQLStorage keeps slots in a kv table.
type SQLStorage struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens the database, pings it and creates the kv table.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQLStorage, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Driver, err)
	}
	s, err := NewSQLStorage(ctx, db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStorage wraps an open database and creates the kv table.
func NewSQLStorage(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLStorage, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", dialect.Driver, err)
	}
	if _, err := db.ExecContext(ctx, dialect.CreateTable); err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLStorage{db: db, dialect: dialect}, nil
}

// Get implements Storage.
func (s *SQLStorage) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE slot = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

// Set implements Storage.
func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Close implements Storage.
func (s *SQLStorage) Close() error {
	return s.db.Close()
}
