package reax

import "github.com/AnatoleLucet/reax/internal"

// The stable error taxonomy the engine surfaces, re-exported so callers can
// errors.Is against them without importing internal.
var (
	// ErrWriteInsideDerived: a write was attempted while a derived was
	// computing.
	ErrWriteInsideDerived = internal.ErrWriteInsideDerived
	// ErrMaxUpdateDepthExceeded: a drain (write, batch exit, FlushSync)
	// hit its self-invalidation loop cap.
	ErrMaxUpdateDepthExceeded = internal.ErrMaxUpdateDepthExceeded
	// ErrDisposedAccess: a Read/Write targeted a disposed Derived.
	ErrDisposedAccess = internal.ErrDisposedAccess
	// ErrInvalidSourceBinding: NewProxy was asked to wrap a value that is
	// neither a map, a slice/array, nor a pointer to one.
	ErrInvalidSourceBinding = internal.ErrInvalidSourceBinding
)
