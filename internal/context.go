package internal

// Context is an opaque provide/inject key scoped to the owner tree, backed
// by Owner's context map.
type Context struct {
	key     any
	initial any
}

func (r *Runtime) NewContext(initial any) *Context {
	return &Context{key: new(byte), initial: initial}
}

// Value resolves the context by walking up from the currently active owner.
// Outside any owner, or when no ancestor has Set a value, the initial value
// provided at construction is returned.
func (c *Context) Value() any {
	rt := GetRuntime()
	if rt.activeOwner == nil {
		return c.initial
	}
	if v, ok := rt.activeOwner.GetContext(c.key); ok {
		return v
	}
	return c.initial
}

// Set binds a value for this context on the currently active owner; it has
// no effect outside any owner (there is nothing to scope the value to).
func (c *Context) Set(value any) {
	rt := GetRuntime()
	if rt.activeOwner == nil {
		return
	}
	rt.activeOwner.SetContext(c.key, value)
}
