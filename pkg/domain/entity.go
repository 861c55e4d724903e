package domain

import "cmp"

// Entity is the embeddable base for objects whose identity is a typed
// identifier rather than their data. The zero identifier marks a
// transient (not yet persisted) entity.
type Entity[ID cmp.Ordered] struct {
	id ID
}

// NewEntity constructs an entity base with the given identifier.
func NewEntity[ID cmp.Ordered](id ID) Entity[ID] {
	return Entity[ID]{id: id}
}

// ID returns the identifier.
func (e Entity[ID]) ID() ID { return e.id }

// IsTransient reports whether the identifier is unset.
func (e Entity[ID]) IsTransient() bool {
	var zero ID
	return e.id == zero
}

// CompareID orders entities by identifier; a lesser (or zero) identifier
// orders first.
func (e Entity[ID]) CompareID(other Entity[ID]) int {
	return cmp.Compare(e.id, other.id)
}

func (e Entity[ID]) entityIdentity() (any, bool) {
	return e.id, !e.IsTransient()
}

type identified interface {
	entityIdentity() (any, bool)
}

// EntityEqual reports whether a and b are the same entity: reference
// identity short-circuits true; otherwise both must have the same
// unproxied runtime type, both must be non-transient, and their
// identifiers must be equal. Two distinct transient instances are never
// equal.
func EntityEqual(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	if sameReference(a, b) {
		return true
	}
	if UnproxiedType(a) != UnproxiedType(b) {
		return false
	}
	ia, aok := identityOf(a)
	ib, bok := identityOf(b)
	if !aok || !bok {
		return false
	}
	return ia == ib
}

func identityOf(v any) (any, bool) {
	if id, ok := unproxyValue(v).(identified); ok {
		return id.entityIdentity()
	}
	return nil, false
}
