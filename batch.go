package reax

import "github.com/AnatoleLucet/reax/internal"

// NewBatch runs fn as a nestable transaction: writes are permitted
// throughout, effect execution is deferred to the outermost exit. Returns
// ErrMaxUpdateDepthExceeded if the trailing drain hit its loop cap.
func NewBatch(fn func()) error {
	return internal.GetRuntime().Batch(fn)
}
