package reax

import "github.com/AnatoleLucet/reax/internal"

// Effect is the handle returned by the effect constructors: it disposes
// the effect (and any nested effects it owns) and removes it from the
// graph.
type Effect struct {
	node *internal.Node
}

// Dispose tears down the effect: runs its last teardown, disposes its
// children, and unregisters it from every signal it depended on.
func (e *Effect) Dispose() { e.node.Dispose() }

func newEffect(variant internal.EffectVariant, fn func()) *Effect {
	return &Effect{node: internal.GetRuntime().NewEffect(variant, fn)}
}

// NewEffect creates a reactive effect: fn runs once immediately, then
// re-runs whenever any signal/derived it read last run changes. Register
// a teardown for the previous run with OnCleanup from inside fn.
func NewEffect(fn func()) *Effect {
	return newEffect(internal.EffectUser, fn)
}

// NewSyncEffect creates an effect that reruns synchronously, in place, on
// every dependency change instead of going through scheduling/batching
// (spec's "effect.sync").
func NewSyncEffect(fn func()) *Effect {
	return newEffect(internal.EffectSync, fn)
}

// NewRootEffect creates a preserved effect that anchors a scheduling
// subtree: an enclosing owner's automatic cleanup skips it, so it survives
// until explicitly disposed (spec's "effect.root").
func NewRootEffect(fn func()) *Effect {
	return newEffect(internal.EffectRoot, fn)
}

// NewRenderEffect creates a scheduled effect that drains ahead of plain
// user effects within every generation — for work (e.g. DOM writes in a
// UI host) that must settle before user-level effects observe it.
func NewRenderEffect(fn func()) *Effect {
	return newEffect(internal.EffectRender, fn)
}

// OnCleanup registers fn to run once, the next time the current owner
// (the innermost effect/derived/owner scope) is disposed or reruns.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}
