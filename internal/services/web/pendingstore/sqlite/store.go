// Package sqlite persists pending records in a local SQLite file so they
// survive web service restarts on a single host.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ourhour/ourhour-web/internal/platform/storage/sqlitemigrate"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store is a pendingstore.Backend over one SQLite table. Rows past their
// expires_at are invisible to Get; the expires_at instant itself is still
// live. Rows are physically removed by Delete, overwrite, or Purge.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	store, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing database handle and applies migrations.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("sql db is required")
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, db, migrationFS, "migrations"); err != nil {
		return nil, fmt.Errorf("migrate pending records: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the live value for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM pending_records WHERE key = ? AND (expires_at IS NULL OR expires_at >= ?)`,
		key, s.now().UnixMilli(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get pending record: %w", err)
	}
	return value, true, nil
}

// Set upserts key. A positive ttlHint sets expires_at.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttlHint time.Duration) error {
	now := s.now()
	var expiresAt sql.NullInt64
	if ttlHint > 0 {
		expiresAt = sql.NullInt64{Int64: now.Add(ttlHint).UnixMilli(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO pending_records (key, value, updated_at, expires_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    value = excluded.value,
    updated_at = excluded.updated_at,
    expires_at = excluded.expires_at`,
		key, value, now.UnixMilli(), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("set pending record: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pending_records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete pending record: %w", err)
	}
	return nil
}

// Purge removes rows whose expiry has passed and reports how many went.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_records WHERE expires_at IS NOT NULL AND expires_at < ?`,
		s.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("purge pending records: %w", err)
	}
	return res.RowsAffected()
}
