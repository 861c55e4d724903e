// Package resolve provides the ambient service-resolution slot: a
// context-carried handle to a dependency resolver that domain objects can
// read without explicit parameter passing.
//
// The handle flows down into child branches of the context that installed
// it, never sideways or upward, so concurrently handled units of work
// never observe each other's resolver. Host integrations (an HTTP
// middleware, an actor invocation filter) install the handle exactly once
// per inbound unit of work via With and do not clear it afterwards;
// clearing happens implicitly when a fresh branch installs its own.
package resolve

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Resolver resolves service implementations. Resolve fills target, which
// must be a non-nil pointer to the requested service type.
type Resolver interface {
	Resolve(target any) error
}

type slotKey struct{}

// holder is the shared indirection between all propagated copies of one
// installed slot. Keeping the resolver behind a mutable cell lets a later
// With invalidate it centrally: descendant branches that captured the same
// holder observe the slot becoming empty rather than using a stale
// resolver past its intended scope.
type holder struct {
	cell atomic.Pointer[Resolver]
}

func (h *holder) get() (Resolver, bool) {
	p := h.cell.Load()
	if p == nil || *p == nil {
		return nil, false
	}
	return *p, true
}

func (h *holder) set(r Resolver) { h.cell.Store(&r) }

func (h *holder) clearCell() { h.cell.Store(nil) }

// With installs r as the ambient resolver for ctx's branch and all of its
// future descendant continuations. Any holder previously visible in ctx is
// cleared first, so branches still referencing it observe an empty slot.
// Continuations already branched from a prior With keep their own slot.
func With(ctx context.Context, r Resolver) context.Context {
	if prev, ok := ctx.Value(slotKey{}).(*holder); ok {
		prev.clearCell()
	}
	h := &holder{}
	h.set(r)
	return context.WithValue(ctx, slotKey{}, h)
}

// From returns the resolver visible in ctx's branch, or false if none was
// installed or it has been cleared.
func From(ctx context.Context) (Resolver, bool) {
	h, ok := ctx.Value(slotKey{}).(*holder)
	if !ok {
		return nil, false
	}
	return h.get()
}

// MustFrom returns the resolver visible in ctx's branch and panics when
// none is installed. A missing resolver is a host misconfiguration, not a
// recoverable condition.
func MustFrom(ctx context.Context) Resolver {
	r, ok := From(ctx)
	if !ok {
		panic("resolve: no resolver installed in context; the host integration must call resolve.With once per unit of work")
	}
	return r
}

// Service resolves a T through the ambient slot. It panics when no
// resolver is installed or resolution fails; domain code treats both as
// wiring errors.
func Service[T any](ctx context.Context) T {
	var target T
	if err := MustFrom(ctx).Resolve(&target); err != nil {
		panic(fmt.Sprintf("resolve: %v", err))
	}
	return target
}
