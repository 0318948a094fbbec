package reax

import "github.com/AnatoleLucet/reax/internal"

// Context is a provide/inject value scoped to the owner tree: Set binds a
// value for the currently active owner and its descendants, Value resolves
// it by walking up from whatever owner is active when called.
type Context[T any] struct {
	ctx *internal.Context
}

// NewContext creates a context with an initial value, returned by Value
// wherever no ancestor owner has called Set.
func NewContext[T any](initial T) *Context[T] {
	return &Context[T]{ctx: internal.GetRuntime().NewContext(initial)}
}

// Value resolves the context from the currently active owner, inheriting
// from parent owners if the current one never called Set.
func (c *Context[T]) Value() T { return as[T](c.ctx.Value()) }

// Set binds value for this context on the currently active owner. Outside
// any owner, Set has no effect (there is nothing to scope it to).
func (c *Context[T]) Set(value T) { c.ctx.Set(value) }
