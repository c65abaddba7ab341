// Package sqlstore persists workspace queries in a SQL database (SQLite or PostgreSQL).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/thermoprops/pkg/domain"
)

// Dialect selects placeholder syntax and column types.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Store implements ports.QueryStore on database/sql.
type Store struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// Option configures a Store.
type Option func(*Store)

// WithTable overrides the table name (default "workspaces").
func WithTable(name string) Option {
	return func(s *Store) {
		s.table = name
	}
}

// New wraps db and creates the table if needed.
func New(ctx context.Context, db *sql.DB, dialect Dialect, opts ...Option) (*Store, error) {
	switch dialect {
	case SQLite, Postgres:
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	s := &Store{db: db, dialect: dialect, table: "workspaces"}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", s.table, err)
	}
	return s, nil
}

// Open opens a database with the driver registered for the dialect.
func Open(dialect Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, err
	}
	if dialect == SQLite {
		// A single connection keeps ":memory:" databases shared.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

func (s *Store) migrate(ctx context.Context) error {
	ts := "DATETIME"
	if s.dialect == Postgres {
		ts = "TIMESTAMPTZ"
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	updated_at %s NOT NULL
)`, s.table, ts)
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

// arg returns the n-th (1-based) placeholder of the dialect.
func (s *Store) arg(n int) string {
	if s.dialect == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Save upserts the query.
func (s *Store) Save(ctx context.Context, id string, query string) error {
	stmt := fmt.Sprintf(`INSERT INTO %s (id, query, updated_at) VALUES (%s, %s, %s)
ON CONFLICT (id) DO UPDATE SET query = excluded.query, updated_at = excluded.updated_at`,
		s.table, s.arg(1), s.arg(2), s.arg(3))

	if _, err := s.db.ExecContext(ctx, stmt, id, query, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save workspace %s: %w", id, err)
	}
	return nil
}

// Load retrieves the query.
func (s *Store) Load(ctx context.Context, id string) (string, error) {
	stmt := fmt.Sprintf(`SELECT query FROM %s WHERE id = %s`, s.table, s.arg(1))

	var query string
	err := s.db.QueryRowContext(ctx, stmt, id).Scan(&query)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrWorkspaceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load workspace %s: %w", id, err)
	}
	return query, nil
}

// Delete removes the workspace.
func (s *Store) Delete(ctx context.Context, id string) error {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE id = %s`, s.table, s.arg(1))
	if _, err := s.db.ExecContext(ctx, stmt, id); err != nil {
		return fmt.Errorf("failed to delete workspace %s: %w", id, err)
	}
	return nil
}

// List returns workspace IDs, most recently updated first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id FROM %s ORDER BY updated_at DESC, id`, s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
