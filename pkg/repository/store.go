// Package repository persists aggregate snapshots keyed by identifier.
// Memory, SQLite and Postgres backends share one semantics: the aggregate
// is serialized to JSON and stored as a single payload per identifier,
// replaced wholesale on every save.
package repository

import (
	"context"
	"errors"
)

// Aggregate is anything the repository can persist. AggregateID returns
// the snapshot key; an empty key marks a transient aggregate, which
// cannot be saved.
type Aggregate interface {
	AggregateID() string
}

// ErrNotFound indicates no snapshot exists for the requested identifier.
var ErrNotFound = errors.New("repository: aggregate not found")

// ErrTransient indicates an attempt to persist an aggregate without an
// identifier.
var ErrTransient = errors.New("repository: transient aggregate has no identifier")

// Store persists snapshots of T. Implementations are safe for concurrent
// use.
type Store[T Aggregate] interface {
	Save(ctx context.Context, aggregate T) error
	Load(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]T, error)
	Close() error
}
