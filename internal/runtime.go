package internal

// Runtime holds the engine's mutable state, scoped to a single instance
// rather than truly global — GetRuntime (runtime_default.go /
// runtime_wasm.go) keys one per goroutine via goid, which is the idiomatic
// Go rendering of a single-threaded cooperative engine where clients
// requiring concurrency serialize at the boundary.
type Runtime struct {
	// --- tracking ---
	activeReaction *Node  // current read-tracker: a Derived or Effect mid-run, or nil
	activeOwner    *Owner // innermost owner scope, for parent/child linkage + OnCleanup
	untracking     bool

	// --- versions ---
	writeVersionCounter uint64
	readVersionCounter  uint64

	// --- batching ---
	batchDepth int

	// --- scheduling, split into two priority tiers: render/pre effects
	// drain ahead of user effects within every generation; sync effects
	// bypass both.
	pendingRender []*Node
	pendingUser   []*Node
	isFlushingSync bool

	// OnRenderSettled/OnUserSettled fire once, after the first generation
	// of their own tier drains (not after effects that generation's run
	// chains into). OnSettled/Tick fire after the whole drain reaches a
	// fixed point, covering every generation.
	renderSettleWaiters []func()
	userSettleWaiters   []func()
	fullSettleWaiters   []chan struct{}
	fullSettleCallbacks []func()

	// --- per-run scratch for the write path ---
	untrackedWrites []*Node
}

func NewRuntime() *Runtime {
	return &Runtime{}
}

// CurrentOwner is the owner new Derived/Effect/Owner nodes are parented
// under, and where OnCleanup registers.
func (r *Runtime) CurrentOwner() *Owner {
	return r.activeOwner
}

func (r *Runtime) OnCleanup(fn func()) {
	if r.activeOwner != nil {
		r.activeOwner.OnCleanup(fn)
	}
}

// newChildOwner creates an Owner for a new Derived/Effect, wiring it under
// whatever owner is currently active (nil at the top level — the caller is
// then responsible for holding the root owner themselves, as NewOwner()
// callers do).
func (r *Runtime) newChildOwner() *Owner {
	o := &Owner{}
	if r.activeOwner != nil {
		r.activeOwner.AddChild(o)
	}
	return o
}

// NewSignal creates a leaf Source<T> node: holds a value, has no deps.
func (r *Runtime) NewSignal(initial any, equals func(a, b any) bool) *Node {
	if equals == nil {
		equals = EqualsSafe
	}
	return &Node{
		kind:   KindSource,
		value:  initial,
		equals: equals,
		rt:     r,
	}
}
