// Package postgres stores catalog records as JSONB payloads in a Postgres table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/tankmate?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the sql.Open hook and returns a restore func. Tests use it
// to point the store at a stub driver.
func OverrideSQLOpen(fn func(driverName, dsn string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}

// Store keeps one row per catalog record, ordered by position.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens the database at dsn (defaultDSN when empty), verifies the
// connection, and ensures the records table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	ddl := `CREATE TABLE IF NOT EXISTS catalog_records (
		position INTEGER PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure catalog table: %w", err)
	}
	return &Store{db: db}, nil
}

// Payloads returns the stored record documents in position order.
func (s *Store) Payloads(ctx context.Context) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT position, payload FROM catalog_records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select catalog records: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out [][]byte
	for rows.Next() {
		var (
			position int64
			payload  []byte
		)
		if err := rows.Scan(&position, &payload); err != nil {
			return nil, fmt.Errorf("scan catalog record: %w", err)
		}
		out = append(out, payload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog records: %w", err)
	}
	return out, nil
}

// ReplacePayloads swaps the table contents for payloads in one transaction.
func (s *Store) ReplacePayloads(ctx context.Context, payloads [][]byte) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `TRUNCATE TABLE catalog_records`); err != nil {
		return fmt.Errorf("truncate catalog records: %w", err)
	}
	for i, payload := range payloads {
		if _, err := tx.ExecContext(ctx, `INSERT INTO catalog_records (position, payload) VALUES ($1, $2)`, i, payload); err != nil {
			return fmt.Errorf("insert catalog record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
