package domain

import (
	"fmt"
	"hash/fnv"
	"reflect"
	"sync"
)

// PartsProvider yields the ordered data members that define a value
// object's identity. Implementations are typically generated by
// equalitygen; DeriveParts offers a reflection fallback.
type PartsProvider interface {
	EqualityParts() []any
}

// Hasher lets a part supply its own hash instead of the derived one.
type Hasher interface {
	Hash() int
}

// ValueObject is the embeddable base for value objects. It carries the
// memoized hash; the zero value is ready to use. Mutating a value object
// after its hash has been read breaks hash-table invariants, by contract
// of the memoization.
type ValueObject struct {
	hashOnce sync.Once
	hash     int
}

func (vo *ValueObject) hashCell() *ValueObject { return vo }

type hashCached interface {
	hashCell() *ValueObject
}

// Equal reports whether a and b are structurally equal: neither nil, same
// unproxied runtime type, and pairwise-equal part sequences in derivation
// order. A nil part position equals another nil part position.
func Equal(a, b PartsProvider) bool {
	if a == nil || b == nil {
		return false
	}
	if sameReference(a, b) {
		return true
	}
	if UnproxiedType(a) != UnproxiedType(b) {
		return false
	}
	pa, pb := a.EqualityParts(), b.EqualityParts()
	if len(pa) != len(pb) {
		return false
	}
	for i := range pa {
		if !partEqual(pa[i], pb[i]) {
			return false
		}
	}
	return true
}

// Hash folds the part sequence left-to-right with seed 1, combining via
// acc = acc*23 + partHash; arithmetic wraps. The result is memoized when v
// embeds ValueObject by pointer, and recomputed per call otherwise.
func Hash(v PartsProvider) int {
	if v == nil {
		return 0
	}
	if c, ok := v.(hashCached); ok {
		cell := c.hashCell()
		cell.hashOnce.Do(func() {
			cell.hash = foldParts(v.EqualityParts())
		})
		return cell.hash
	}
	return foldParts(v.EqualityParts())
}

func foldParts(parts []any) int {
	acc := 1
	for _, p := range parts {
		acc = acc*23 + partHash(p)
	}
	return acc
}

func partHash(p any) int {
	switch v := p.(type) {
	case nil:
		return 0
	case Hasher:
		return v.Hash()
	case PartsProvider:
		return Hash(v)
	}
	// Part equality dereferences pointers, so the hash must depend on the
	// pointee, never the address.
	if rv := reflect.ValueOf(p); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0
		}
		return partHash(rv.Elem().Interface())
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%T/%v", p, p)
	return int(h.Sum64())
}

func partEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	pa, aok := a.(PartsProvider)
	pb, bok := b.(PartsProvider)
	if aok && bok {
		return Equal(pa, pb)
	}
	return reflect.DeepEqual(a, b)
}

// sameReference reports whether a and b are the same pointer. Interface
// comparison is avoided because part-bearing structs may contain
// non-comparable fields.
func sameReference(a, b any) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	return av.Kind() == reflect.Pointer && bv.Kind() == reflect.Pointer && av.Pointer() == bv.Pointer()
}
