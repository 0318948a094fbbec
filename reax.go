// Package reax is a fine-grained reactive runtime: signals, deriveds and
// effects with push-down dirty marking, pull-up lazy revalidation, and
// stack-safe propagation no matter how deep a dependency chain runs.
package reax

import "github.com/AnatoleLucet/reax/internal"

// as converts an internal any-typed value back to T, treating a nil
// interface as T's zero value rather than panicking on the assertion.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Equals is a change predicate: given the old and new value of a signal or
// derived, it reports whether they should be considered equal (no
// downstream reactions triggered).
type Equals func(a, b any) bool

// Equality presets recognized by signal/derived options.
var (
	// EqualsStrictIdentity never special-cases NaN.
	EqualsStrictIdentity Equals = internal.EqualsStrictIdentity
	// EqualsSafe is the default: identity, except NaN equals NaN, and
	// incomparable dynamic types are always reported as changed.
	EqualsSafe Equals = internal.EqualsSafe
	// EqualsShallow compares one level deep (fields/keys/elements).
	EqualsShallow Equals = internal.EqualsShallow
	// EqualsAlways never triggers downstream reactions.
	EqualsAlways Equals = internal.EqualsAlways
	// EqualsNever always triggers downstream reactions, even a == a.
	EqualsNever Equals = internal.EqualsNever
)

// SignalOption configures a Signal at construction (functional-options, to
// leave room for more than just Equals without breaking callers).
type SignalOption func(*signalOptions)

type signalOptions struct {
	equals Equals
}

// WithEquals overrides the default change predicate (EqualsSafe).
func WithEquals(eq Equals) SignalOption {
	return func(o *signalOptions) { o.equals = eq }
}

// Signal is a Writable<T>: a leaf reactive value.
type Signal[T any] struct {
	node *internal.Node
}

// NewSignal creates a read/write signal holding initial.
func NewSignal[T any](initial T, opts ...SignalOption) *Signal[T] {
	o := signalOptions{equals: internal.EqualsSafe}
	for _, apply := range opts {
		apply(&o)
	}
	return &Signal[T]{
		node: internal.GetRuntime().NewSignal(initial, o.equals),
	}
}

// Read the current value, tracking the dependency if called inside a
// reaction.
func (s *Signal[T]) Read() T {
	v, _ := internal.Read(s.node)
	return as[T](v)
}

// Write a new value, triggering downstream reactions unless it compares
// equal to the current value. Returns ErrWriteInsideDerived if called from
// inside a computing Derived, or ErrMaxUpdateDepthExceeded if the loop cap
// was hit while draining the effects this write triggered.
func (s *Signal[T]) Write(v T) error {
	return internal.Write(s.node, v)
}

// Derived is a Readable<T> computed lazily from other signals/deriveds.
// Never computes until first read.
type Derived[T any] struct {
	node *internal.Node
}

// NewDerived creates a derived value. compute must be pure: it may read
// any number of signals/deriveds but must not write to one (doing so
// returns ErrWriteInsideDerived from that write call).
func NewDerived[T any](compute func() T, opts ...SignalOption) *Derived[T] {
	o := signalOptions{equals: internal.EqualsSafe}
	for _, apply := range opts {
		apply(&o)
	}
	return &Derived[T]{
		node: internal.GetRuntime().NewDerived(func() any { return compute() }, o.equals),
	}
}

// Read the current value, revalidating first if dirty/maybe-dirty, and
// tracking the dependency if called inside a reaction.
func (d *Derived[T]) Read() T {
	v, _ := internal.Read(d.node)
	return as[T](v)
}

// Dispose tears down this derived ahead of its owner being disposed: later
// reads return the last cached value and no longer recompute.
func (d *Derived[T]) Dispose() { d.node.Dispose() }
