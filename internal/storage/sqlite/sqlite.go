// Package sqlite provides a SQLite-backed implementation of the
// storage.KeyValue interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. Writes are atomic, so a crash mid-save never leaves half a
// buddy list behind.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The schema lives in migrations/ and is applied by goose on open.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/aanand-mishra/timezone-buddy/internal/config"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SQLite is the concrete implementation of storage.KeyValue.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.Storage.Path, creating the parent
// directory if needed, and brings the schema up to date.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.Storage.Path)
}

// Open is New for callers that only have a path (tests, import tooling).
func Open(path string) (*SQLite, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite.Open: create dir: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet; it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	// A single connection keeps writes serialized; the buddy list is tiny.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: ping: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{Db: db}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("sqlite.migrate: set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("sqlite.migrate: up: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetItem fetches the value stored under key.
//
// QueryRow returns exactly one row. If the query finds no match it does
// NOT return nil: sql.ErrNoRows surfaces only when you call Scan, and
// it is translated into ok=false here.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.Db.QueryRowContext(ctx,
		"SELECT value FROM kv_items WHERE key = ? LIMIT 1", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("GetItem: scan: %w", err)
	}

	return value, true, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// SetItem upserts key. The whole value is replaced in one statement, so a
// reader never observes a partially written list.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) SetItem(ctx context.Context, key, value string) error {
	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO kv_items (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("SetItem: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, key, value); err != nil {
		return fmt.Errorf("SetItem: exec: %w", err)
	}

	return nil
}

// RemoveItem deletes the row for key, if any.
func (s *SQLite) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.Db.ExecContext(ctx, "DELETE FROM kv_items WHERE key = ?", key); err != nil {
		return fmt.Errorf("RemoveItem: exec: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
