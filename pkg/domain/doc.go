// Package domain provides the base building blocks for domain models:
// value objects with derived structural equality and cached hashing,
// entities identified by a typed identifier, and aggregate roots that
// record domain events.
//
// Value objects embed ValueObject and expose their identity-defining data
// through EqualityParts, either generated by equalitygen or derived at
// runtime via DeriveParts. Two value objects are equal when their unproxied
// runtime types match and their part sequences are pairwise equal; the hash
// is a deterministic fold over the same sequence and is memoized on first
// read, so value objects must not be mutated after construction.
package domain
