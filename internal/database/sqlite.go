// Package database provides SQLite-backed storage for enrolled identities
// and the append-only attendance ledger.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if necessary) the SQLite database at the given path.
// The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// busy_timeout makes concurrent writers block briefly behind each other
	// instead of failing with SQLITE_BUSY.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite serializes writes at the file level; a single connection avoids
	// needless lock contention between pooled connections of one process.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database connection: %w", err)
		}
	}
	return nil
}

// Migrate creates the identity and attendance tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	createIdentity := `
		CREATE TABLE IF NOT EXISTS identity (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			reference_embedding BLOB NOT NULL,
			last_updated        TEXT
		)
	`
	if _, err := s.db.ExecContext(ctx, createIdentity); err != nil {
		return fmt.Errorf("create identity table: %w", err)
	}

	createAttendance := `
		CREATE TABLE IF NOT EXISTS attendance (
			log_id      INTEGER PRIMARY KEY,
			identity_id TEXT NOT NULL,
			name        TEXT NOT NULL,
			timestamp   TEXT NOT NULL,
			event_type  TEXT DEFAULT 'ENTRY'
		)
	`
	if _, err := s.db.ExecContext(ctx, createAttendance); err != nil {
		return fmt.Errorf("create attendance table: %w", err)
	}

	return nil
}

// resetSequence clears the auto-increment counter for a table. The
// sqlite_sequence table only exists once an AUTOINCREMENT column has been
// used, so a failure here is expected on fresh databases and ignored.
func (s *Store) resetSequence(ctx context.Context, table string) {
	_, _ = s.db.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table)
}
