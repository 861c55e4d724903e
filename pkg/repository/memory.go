package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-memory Store backend. Snapshots are held as marshaled
// JSON so load/save round-trip semantics match the durable backends
// exactly.
type Memory[T Aggregate] struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemory constructs an empty in-memory store.
func NewMemory[T Aggregate]() *Memory[T] {
	return &Memory[T]{snapshots: make(map[string][]byte)}
}

// Save stores a snapshot of aggregate, replacing any prior one.
func (m *Memory[T]) Save(_ context.Context, aggregate T) error {
	id := aggregate.AggregateID()
	if id == "" {
		return ErrTransient
	}
	payload, err := json.Marshal(aggregate)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[id] = payload
	return nil
}

// Load returns the aggregate stored under id.
func (m *Memory[T]) Load(_ context.Context, id string) (T, error) {
	var out T
	m.mu.RLock()
	payload, ok := m.snapshots[id]
	m.mu.RUnlock()
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return out, nil
}

// Delete removes the snapshot stored under id.
func (m *Memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.snapshots, id)
	return nil
}

// List returns all stored aggregates ordered by identifier.
func (m *Memory[T]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	payloads := make([][]byte, 0, len(ids))
	for _, id := range ids {
		payloads = append(payloads, m.snapshots[id])
	}
	m.mu.RUnlock()

	out := make([]T, 0, len(payloads))
	for i, payload := range payloads {
		var agg T
		if err := json.Unmarshal(payload, &agg); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot %s: %w", ids[i], err)
		}
		out = append(out, agg)
	}
	return out, nil
}

// Close is a no-op for the in-memory backend.
func (m *Memory[T]) Close() error { return nil }
