package repository

import (
	"context"
	"errors"
	"testing"
)

type account struct {
	ID      string `json:"id"`
	Owner   string `json:"owner"`
	Balance int64  `json:"balance"`
}

func (a account) AggregateID() string { return a.ID }

// Compile-time contract assertions for all backends.
var (
	_ Store[account] = (*Memory[account])(nil)
	_ Store[account] = (*SQLite[account])(nil)
	_ Store[account] = (*Postgres[account])(nil)
	_ Store[account] = (*S3[account])(nil)
	_ Store[account] = (*Instrumented[account])(nil)
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[account]()

	if err := store.Save(ctx, account{ID: "acc-1", Owner: "ada", Balance: 100}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "acc-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Owner != "ada" || got.Balance != 100 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestMemorySaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[account]()
	if err := store.Save(ctx, account{ID: "acc-1", Balance: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, account{ID: "acc-1", Balance: 2}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "acc-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Balance != 2 {
		t.Fatalf("expected latest snapshot, got balance %d", got.Balance)
	}
}

func TestMemoryTransientRejected(t *testing.T) {
	store := NewMemory[account]()
	if err := store.Save(context.Background(), account{}); !errors.Is(err, ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
}

func TestMemoryLoadMissing(t *testing.T) {
	store := NewMemory[account]()
	if _, err := store.Load(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[account]()
	if err := store.Save(ctx, account{ID: "acc-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "acc-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "acc-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryListOrderedByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[account]()
	for _, id := range []string{"c", "a", "b"} {
		if err := store.Save(ctx, account{ID: id}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("expected identifier order, got %+v", got)
	}
}

func TestMemoryLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[account]()
	if err := store.Save(ctx, account{ID: "acc-1", Balance: 5}); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, _ := store.Load(ctx, "acc-1")
	first.Balance = 999
	second, _ := store.Load(ctx, "acc-1")
	if second.Balance != 5 {
		t.Fatalf("loads must not share state, got %d", second.Balance)
	}
}
