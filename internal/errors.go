package internal

import "errors"

// The stable error taxonomy the engine surfaces. Returned as Go errors from
// the operations that can fail rather than raised as client-visible panics,
// preferring explicit error returns over the exception-flavored control
// flow most JS/TS signal libraries use for the same cases.
var (
	// ErrWriteInsideDerived: a write was attempted while a derived was
	// computing. Fatal to the write; the derived never observes the
	// partial mutation.
	ErrWriteInsideDerived = errors.New("reax: write attempted while a derived is computing")

	// ErrMaxUpdateDepthExceeded: flushSync's loop cap was reached. State
	// may be inconsistent; the caller should tear down the affected scope.
	ErrMaxUpdateDepthExceeded = errors.New("reax: max update depth exceeded")

	// ErrDisposedAccess: a Read or Write targeted a disposed Derived (its
	// owner was torn down). Read still returns the last cached value
	// alongside this error rather than panicking; the public facade's
	// Derived.Read returns just that value.
	ErrDisposedAccess = errors.New("reax: access through a disposed reaction")

	// ErrInvalidSourceBinding: a helper (e.g. the deep proxy) was asked to
	// bind to a value that is neither a primitive, a signal/derived, a
	// callable, nor a supported compound.
	ErrInvalidSourceBinding = errors.New("reax: invalid source binding")
)
