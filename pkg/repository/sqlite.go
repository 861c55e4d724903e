package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite is a Store backend persisting snapshots to a single SQLite table
// of identifier/payload rows.
type SQLite[T Aggregate] struct {
	db    *sql.DB
	table string
}

// NewSQLite opens (creating if necessary) a SQLite-backed store at path.
// An empty table name defaults to "snapshots".
func NewSQLite[T Aggregate](path, table string) (*SQLite[T], error) {
	if path == "" {
		path = "domainkit.db"
	}
	if table == "" {
		table = "snapshots"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLite[T]{db: db, table: table}
	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
		id TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`, table)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return s, nil
}

// Save upserts the aggregate's snapshot.
func (s *SQLite[T]) Save(ctx context.Context, aggregate T) error {
	id := aggregate.AggregateID()
	if id == "" {
		return ErrTransient
	}
	payload, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO %q (id, payload) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`, s.table)
	if _, err := s.db.ExecContext(ctx, query, id, payload); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the aggregate stored under id.
func (s *SQLite[T]) Load(ctx context.Context, id string) (T, error) {
	var out T
	var payload []byte
	query := fmt.Sprintf(`SELECT payload FROM %q WHERE id = ?`, s.table)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return out, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return out, fmt.Errorf("select snapshot: %w", err)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return out, nil
}

// Delete removes the snapshot stored under id.
func (s *SQLite[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %q WHERE id = ?`, s.table)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// List returns all stored aggregates ordered by identifier.
func (s *SQLite[T]) List(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT payload FROM %q ORDER BY id`, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var agg T
		if err := json.Unmarshal(payload, &agg); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot: %w", err)
		}
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}

// Close releases the underlying database handle.
func (s *SQLite[T]) Close() error {
	return s.db.Close()
}
