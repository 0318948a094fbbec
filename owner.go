package reax

import "github.com/AnatoleLucet/reax/internal"

// Owner is a manually managed lifecycle scope: every Derived/Effect (and
// nested Owner) created while it is active becomes its child, and disposing
// it cascades to them, root effects excepted — the same disposal tree an
// Effect uses internally, exposed directly here instead of only implicitly.
// Signals have no owner and are unaffected by disposal.
type Owner struct {
	owner *internal.Owner
}

// NewOwner creates an owner scope, parented under whatever owner is
// currently active (so a nested NewOwner created during a parent's Run is
// disposed along with that parent).
func NewOwner() *Owner {
	return &Owner{owner: internal.GetRuntime().NewOwner()}
}

// Run executes fn with this owner active: reactive nodes created inside fn
// are parented under it, and a panic from fn is recovered into the nearest
// OnError handlers found walking up from this owner through its ancestors
// (re-panicking if none is registered anywhere in that chain).
func (o *Owner) Run(fn func() error) error {
	var err error
	o.owner.Run(func() { err = fn() })
	return err
}

// Dispose tears down this owner and every child it owns except root
// effects, depth-first, then runs its own OnDispose/OnCleanup callbacks.
// Safe to call more than once.
func (o *Owner) Dispose() { o.owner.Dispose() }

// OnCleanup registers fn to run once, the next time this owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// OnDispose registers fn to run every time Dispose is called on this owner.
func (o *Owner) OnDispose(fn func()) { o.owner.OnDispose(fn) }

// OnError registers a panic handler: a panic raised by anything run under
// this owner (directly, or bubbling up from a child that has none of its
// own) is recovered and passed to fn instead of propagating further.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }
