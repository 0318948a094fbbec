package reax

import "github.com/AnatoleLucet/reax/internal"

// FlushSync drains every pending effect to a fixed point right now,
// optionally running fn first. Returns ErrMaxUpdateDepthExceeded if the
// drain's self-invalidation loop cap was hit.
func FlushSync(fn func()) error {
	return internal.GetRuntime().FlushSync(fn)
}

// Tick is the Go rendering of an `await the next scheduling turn`
// primitive: it returns a channel closed once the in-flight (or next)
// drain reaches a fixed point.
func Tick() <-chan struct{} {
	return internal.GetRuntime().Tick()
}

// OnRenderSettled runs fn once, after the render-effect tier's first
// generation of the next drain finishes — ahead of any user effects from
// that same generation.
func OnRenderSettled(fn func()) {
	internal.GetRuntime().OnRenderSettled(fn)
}

// OnUserSettled runs fn once, after the user-effect tier's first
// generation of the next drain finishes (not waiting for effects that
// generation chains into via its own writes).
func OnUserSettled(fn func()) {
	internal.GetRuntime().OnUserSettled(fn)
}

// OnSettled runs fn once the next drain reaches a fixed point, including
// every chained generation (an effect's write triggering another effect,
// and so on).
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}
