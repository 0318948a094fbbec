package internal

// EffectVariant selects one of the effect flavors the engine supports.
type EffectVariant uint8

const (
	// EffectUser is the default: scheduled, coalesced with other pending
	// effects, runs through the batching/microtask path.
	EffectUser EffectVariant = iota
	// EffectSync runs immediately on creation and on every dependency
	// change, bypassing scheduling (and batching) entirely.
	EffectSync
	// EffectRoot anchors a scheduling subtree: its owner survives an
	// enclosing owner's automatic child cleanup and must be disposed
	// explicitly.
	EffectRoot
	// EffectRender is a scheduled effect that drains ahead of EffectUser
	// within every generation (a pre/render-effect tier, used for work that
	// must settle before user-observable effects run).
	EffectRender
)

// NewEffect creates an Effect. Effects run once immediately at creation,
// then rerun whenever markReactions marks them Dirty or MaybeDirty. Teardown
// between runs is OnCleanup-based (registered from inside run against the
// effect's own owner), not a return value from run.
func (r *Runtime) NewEffect(variant EffectVariant, run func()) *Node {
	n := &Node{
		kind:  KindEffect,
		state: StateDirty,
		run:   run,
		rt:    r,
	}
	n.owner = r.newChildOwner()

	switch variant {
	case EffectSync:
		n.AddFlag(FlagSyncEffect)
	case EffectRoot:
		n.AddFlag(FlagRootEffect)
		n.owner.preserved = true
	case EffectRender:
		n.AddFlag(FlagRenderEffect)
	}

	n.owner.OnDispose(func() {
		n.AddFlag(FlagDestroyed)
		n.clearDeps()
	})

	runEffect(n)

	return n
}

// Dispose tears down an effect: disposes its owned children, drains its
// last OnCleanup callbacks, and removes it from the graph. Safe to call
// more than once.
func (n *Node) Dispose() {
	n.owner.Dispose()
}

// runEffect runs (or reruns) a single effect through its full lifecycle:
// bail if destroyed, mark clean, tear down the previous run's children and
// cleanups, run under tracking, then detect self-invalidation.
func runEffect(n *Node) {
	// 1. bail if destroyed.
	if n.HasFlag(FlagDestroyed) {
		return
	}

	// 2. mark clean before running, so a write issued mid-run by this same
	// effect against one of its own (about-to-be-recorded) deps can be told
	// apart from an externally-driven rerun (see Write's untrackedWrites).
	n.state = StateClean

	// 3. destroy non-preserved children from the previous run and drain the
	// previous run's OnCleanup callbacks (the teardown mechanism: run
	// registers "undo me" via the package-level OnCleanup, not a return
	// value).
	n.owner.DisposeChildren()
	n.owner.DrainCleanups()

	// 4. run fn under tracking, diffing deps against the previous run. A
	// client panic is recovered and routed to the nearest OnError handler
	// up the owner tree (client errors propagate but a registered handler
	// may choose to swallow them); finishRun still runs first so the dep
	// diff completes even on a panicked run, keeping bookkeeping consistent.
	beginRun(n)

	savedUntracked := n.rt.untrackedWrites
	n.rt.untrackedWrites = nil

	panicked := runRecovered(n, func() { runWithReaction(n, n.run) })

	finishRun(n)

	selfWrites := n.rt.untrackedWrites
	n.rt.untrackedWrites = savedUntracked

	if panicked {
		return
	}

	// 5. if a write this run targeted one of its own (now current) deps,
	// the effect has self-invalidated: flag dirty and reschedule so it
	// observes its own side effect on the next drain pass.
	if writesIntersectDeps(selfWrites, n.deps) {
		n.state = StateDirty
		scheduleEffect(n)
	}

	// 6. active reaction/owner already restored by runWithReaction's defer.
}

// runRecovered runs fn, recovering any panic and routing it to n's owner
// chain (Owner.handlePanic), reporting whether one was caught so the
// caller can skip bookkeeping that assumes a clean run.
func runRecovered(n *Node, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			n.owner.handlePanic(r)
		}
	}()
	fn()
	return false
}

func writesIntersectDeps(writes, deps []*Node) bool {
	for _, w := range writes {
		for _, d := range deps {
			if d == w {
				return true
			}
		}
	}
	return false
}
