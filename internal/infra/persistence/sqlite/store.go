// Package sqlite stores catalog records as JSON payloads in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const defaultPath = "tankmate.db"

// Store keeps one row per catalog record, ordered by position.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (creating if needed) the SQLite database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS catalog_records (
		position INTEGER PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create catalog table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Payloads returns the stored record documents in position order.
func (s *Store) Payloads(ctx context.Context) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM catalog_records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select catalog records: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out [][]byte
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, payload)
	}
	return out, rows.Err()
}

// ReplacePayloads swaps the table contents for payloads in one transaction.
func (s *Store) ReplacePayloads(ctx context.Context, payloads [][]byte) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_records`); err != nil {
		return fmt.Errorf("clear catalog records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO catalog_records(position, payload) VALUES(?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()
	for i, payload := range payloads {
		if _, err := stmt.ExecContext(ctx, i, payload); err != nil {
			return fmt.Errorf("insert catalog record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// DB exposes the underlying sql.DB for tests.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
