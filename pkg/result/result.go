// Package result provides a success/failure outcome type used instead of
// raised errors for expected failure paths. Outcomes are immutable values
// constructed only through Ok, Fail and their value-carrying variants; a
// failure's message accumulates through WithError rather than being
// overwritten, which lets callers collect multiple validation failures
// into one outcome without aborting at the first.
package result

// Result is a value-form outcome without a payload. The zero value is not
// a meaningful outcome; use Ok or Fail.
type Result struct {
	errMsg string
	ok     bool
}

// Ok returns a successful outcome. Successful outcomes carry no error
// text.
func Ok() Result {
	return Result{ok: true}
}

// Fail returns a failed outcome carrying msg.
func Fail(msg string) Result {
	return Result{errMsg: msg}
}

// IsSuccess reports whether the outcome succeeded.
func (r Result) IsSuccess() bool { return r.ok }

// IsFailure reports whether the outcome failed.
func (r Result) IsFailure() bool { return !r.ok }

// Error returns the accumulated failure message, empty for success.
func (r Result) Error() string { return r.errMsg }

// WithError returns a new failed outcome whose message is the existing
// message and msg joined by a newline. On a success (or an empty existing
// message) the new message stands alone.
func (r Result) WithError(msg string) Result {
	if r.errMsg == "" {
		return Result{errMsg: msg}
	}
	return Result{errMsg: joinMessages(r.errMsg, msg)}
}
