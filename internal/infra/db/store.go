package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrDisabled is returned by Ping when no database is configured.
var ErrDisabled = errors.New("database not configured")

// RowScanner is satisfied by *sql.Rows and *sql.Row.
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanFunc reads the current row.
type ScanFunc func(RowScanner) error

// Store runs single parameterized statements against the pool.
//
// Each call checks one connection out of the pool and returns it before the
// call returns, whatever the outcome. A Store built from a nil *sql.DB is
// disabled: queries yield no rows and never touch the network.
type Store struct {
	db *sql.DB
}

// NewStore wraps db. A nil db produces a disabled Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Enabled reports whether a database is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// DB returns the underlying pool, nil when disabled.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Query runs query and calls scan once per returned row.
// It returns the number of rows scanned.
func (s *Store) Query(ctx context.Context, scan ScanFunc, query string, args ...any) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		if err := scan(rows); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, err
	}
	return n, nil
}

// QueryRow runs query and scans at most one row.
// found is false when the query matched nothing or the store is disabled.
func (s *Store) QueryRow(ctx context.Context, scan ScanFunc, query string, args ...any) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := scan(conn.QueryRowContext(ctx, query, args...)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Exec runs a statement that returns no rows and reports rows affected.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Ping checks connectivity. It returns ErrDisabled when no database is configured.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	return s.db.PingContext(ctx)
}
