package resolve

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotRegistered indicates no service satisfies the requested type.
var ErrNotRegistered = errors.New("resolve: service not registered")

// ErrNotPointer indicates a Resolve target that is not a non-nil pointer.
var ErrNotPointer = errors.New("resolve: target must be a non-nil pointer")

// Registry is a type-keyed Resolver implementation suitable for host
// integrations to install via With. Registration is typically done during
// startup; Resolve is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
}

// Compile-time contract assertion.
var _ Resolver = (*Registry)(nil)

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{services: make(map[reflect.Type]any)}
}

// Register stores value keyed by its dynamic type, replacing any previous
// registration for that type.
func (g *Registry) Register(value any) {
	if value == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.services[reflect.TypeOf(value)] = value
}

// RegisterAs stores impl keyed by the interface type T, so resolution
// requests for T return impl regardless of its concrete type.
func RegisterAs[T any](g *Registry, impl T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.services[reflect.TypeOf((*T)(nil)).Elem()] = impl
}

// Resolve fills target with the service registered for its pointed-to
// type. An exact type match wins; otherwise a registered service
// implementing a requested interface type is used. Ambiguous interface
// requests should be avoided by registering with RegisterAs.
func (g *Registry) Resolve(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNotPointer
	}
	want := rv.Type().Elem()

	g.mu.RLock()
	defer g.mu.RUnlock()

	if svc, ok := g.services[want]; ok {
		rv.Elem().Set(reflect.ValueOf(svc))
		return nil
	}
	if want.Kind() == reflect.Interface {
		for registered, svc := range g.services {
			if registered.Implements(want) {
				rv.Elem().Set(reflect.ValueOf(svc))
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrNotRegistered, want)
}
