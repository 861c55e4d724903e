package result

import "fmt"

// Of is the value-carrying outcome form. The embedded Result is the
// value-free view: of.Result discards the payload, which is lossless for
// success and lossy-safe for failure (a failed outcome's value is absent
// either way).
type Of[T any] struct {
	Result
	value T
}

// OkOf returns a successful outcome carrying v.
func OkOf[T any](v T) Of[T] {
	return Of[T]{Result: Ok(), value: v}
}

// FailOf returns a failed outcome of the value-carrying form.
func FailOf[T any](msg string) Of[T] {
	return Of[T]{Result: Fail(msg)}
}

// Attach carries v into the value form of r. The value is only observable
// when r succeeded.
func Attach[T any](r Result, v T) Of[T] {
	return Of[T]{Result: r, value: v}
}

// Value returns the carried value for a success and the zero value for a
// failure.
func (r Of[T]) Value() T {
	if r.IsFailure() {
		var zero T
		return zero
	}
	return r.value
}

// MustValue returns the carried value and panics on a failed outcome.
func (r Of[T]) MustValue() T {
	if r.IsFailure() {
		panic(fmt.Sprintf("result: MustValue on failed outcome: %s", r.Error()))
	}
	return r.value
}

// WithValue returns a new outcome carrying a replacement value; the
// success/failure state and message are preserved.
func (r Of[T]) WithValue(v T) Of[T] {
	return Of[T]{Result: r.Result, value: v}
}

// WithError returns a new failed outcome with the accumulated message,
// preserving the carried value slot.
func (r Of[T]) WithError(msg string) Of[T] {
	return Of[T]{Result: r.Result.WithError(msg), value: r.value}
}
