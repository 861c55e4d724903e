package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	postgresDriver = "pgx"
	defaultDSN     = "postgres://localhost/domainkit?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// OverrideSQLOpen swaps the sql.Open seam for tests and returns a restore
// function.
func OverrideSQLOpen(fn func(driver, dsn string) (*sql.DB, error)) func() {
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

// Postgres is a Store backend persisting snapshots to a single Postgres
// table of identifier/payload rows.
type Postgres[T Aggregate] struct {
	db    *sql.DB
	table string
}

// NewPostgres opens a Postgres-backed store using the provided DSN
// (falling back to a localhost default) and ensures the snapshot table
// exists. An empty table name defaults to "snapshots".
func NewPostgres[T Aggregate](ctx context.Context, dsn, table string) (*Postgres[T], error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	if table == "" {
		table = "snapshots"
	}
	openMu.Lock()
	open := sqlOpen
	openMu.Unlock()
	db, err := open(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
		id TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`, table)
	if _, err := db.ExecContext(ctx, query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &Postgres[T]{db: db, table: table}, nil
}

// Save upserts the aggregate's snapshot.
func (p *Postgres[T]) Save(ctx context.Context, aggregate T) error {
	id := aggregate.AggregateID()
	if id == "" {
		return ErrTransient
	}
	payload, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO %q (id, payload) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`, p.table)
	if _, err := p.db.ExecContext(ctx, query, id, payload); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the aggregate stored under id.
func (p *Postgres[T]) Load(ctx context.Context, id string) (T, error) {
	var out T
	var payload []byte
	query := fmt.Sprintf(`SELECT payload FROM %q WHERE id = $1`, p.table)
	err := p.db.QueryRowContext(ctx, query, id).Scan(&payload)
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
func (p *Postgres[T]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %q WHERE id = $1`, p.table)
	res, err := p.db.ExecContext(ctx, query, id)
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
func (p *Postgres[T]) List(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT payload FROM %q ORDER BY id`, p.table)
	rows, err := p.db.QueryContext(ctx, query)
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
func (p *Postgres[T]) Close() error {
	return p.db.Close()
}
