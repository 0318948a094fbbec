package internal

// scheduleEffect queues an effect to run. Sync effects bypass queueing
// entirely and rerun immediately, in place. Everything else is added to one
// of two priority tiers (deduped via FlagInPending); draining is driven by
// the call site (Write, Batch exit, FlushSync), not from here, so the error
// a drain can produce (MaxUpdateDepthExceeded) has somewhere to be returned
// to.
func scheduleEffect(r *Node) {
	if r.HasFlag(FlagSyncEffect) {
		runEffect(r)
		return
	}

	if r.HasFlag(FlagInPending) {
		return
	}
	r.AddFlag(FlagInPending)

	if r.HasFlag(FlagRenderEffect) {
		r.rt.pendingRender = append(r.rt.pendingRender, r)
	} else {
		r.rt.pendingUser = append(r.rt.pendingUser, r)
	}
}

// Batch runs fn as a nestable transaction: writes are permitted throughout,
// effect execution is deferred to the outermost exit.
func (r *Runtime) Batch(fn func()) error {
	r.batchDepth++
	fn()
	r.batchDepth--

	if r.batchDepth == 0 {
		return drainPending(r)
	}
	return nil
}

func hasPending(r *Runtime) bool {
	return len(r.pendingRender) > 0 || len(r.pendingUser) > 0
}

// drainPending runs every pending effect to a fixed point, capped against
// runaway self-invalidation. Each generation drains the render tier fully
// before the user tier. Reentrant calls (an effect's own write scheduling
// a drain while one is already unwinding the call stack) are no-ops: the
// outermost call owns the loop and its return value.
func drainPending(r *Runtime) error {
	if r.isFlushingSync {
		return nil
	}
	r.isFlushingSync = true
	defer func() {
		r.isFlushingSync = false
		notifyFullSettleWaiters(r)
	}()

	const maxIterations = 1000
	iterations := 0
	firstGeneration := true

	// Always run at least one (possibly empty) generation: a drain is
	// triggered by every unbatched write, and the On*Settled hooks resolve
	// against "the next completed drain", not "the next drain that
	// happened to find something queued".
	for firstGeneration || hasPending(r) {
		iterations++
		if iterations > maxIterations {
			clearPending(r)
			return ErrMaxUpdateDepthExceeded
		}

		renderBatch := r.pendingRender
		r.pendingRender = nil
		runBatch(renderBatch)
		if firstGeneration {
			notifyRenderSettleWaiters(r)
		}

		userBatch := r.pendingUser
		r.pendingUser = nil
		runBatch(userBatch)
		if firstGeneration {
			notifyUserSettleWaiters(r)
		}

		firstGeneration = false
	}

	return nil
}

func runBatch(batch []*Node) {
	for _, reaction := range batch {
		reaction.RemoveFlag(FlagInPending)
		if reaction.HasFlag(FlagDestroyed) {
			continue
		}
		runEffect(reaction)
	}
}

func clearPending(r *Runtime) {
	for _, reaction := range r.pendingRender {
		reaction.RemoveFlag(FlagInPending)
	}
	for _, reaction := range r.pendingUser {
		reaction.RemoveFlag(FlagInPending)
	}
	r.pendingRender = nil
	r.pendingUser = nil
}

func notifyRenderSettleWaiters(r *Runtime) {
	waiters := r.renderSettleWaiters
	r.renderSettleWaiters = nil
	for _, fn := range waiters {
		fn()
	}
}

func notifyUserSettleWaiters(r *Runtime) {
	waiters := r.userSettleWaiters
	r.userSettleWaiters = nil
	for _, fn := range waiters {
		fn()
	}
}

func notifyFullSettleWaiters(r *Runtime) {
	waiters := r.fullSettleWaiters
	r.fullSettleWaiters = nil
	for _, ch := range waiters {
		close(ch)
	}

	callbacks := r.fullSettleCallbacks
	r.fullSettleCallbacks = nil
	for _, fn := range callbacks {
		fn()
	}
}

// OnRenderSettled runs fn once, after the render tier's first generation of
// the next drain finishes (ahead of any user effects from that same
// generation). Like the other On*Settled hooks, it always defers to a
// drain that hasn't happened yet, even if nothing is currently pending —
// there is no "already settled" state to resolve against synchronously.
func (r *Runtime) OnRenderSettled(fn func()) {
	r.renderSettleWaiters = append(r.renderSettleWaiters, fn)
}

// OnUserSettled runs fn once, after the user tier's first generation of
// the next drain finishes (ahead of any effects that generation chains
// into).
func (r *Runtime) OnUserSettled(fn func()) {
	r.userSettleWaiters = append(r.userSettleWaiters, fn)
}

// OnSettled runs fn once the next drain reaches a fixed point, including
// every chained generation.
func (r *Runtime) OnSettled(fn func()) {
	r.fullSettleCallbacks = append(r.fullSettleCallbacks, fn)
}

// FlushSync drains pending effects to a fixed point right now, optionally
// running fn first. fn runs batched, so effects its writes trigger run in
// this drain, after fn returns.
func (r *Runtime) FlushSync(fn func()) error {
	if fn != nil {
		r.batchDepth++
		fn()
		r.batchDepth--
	}
	return drainPending(r)
}

// Tick returns a channel closed once the in-flight (or next) drain
// completes — the Go rendering of an "await the next scheduling turn"
// primitive: this engine has no separate microtask queue of its own
// (scheduling collapses to "drain now, unless batched"), so outside a
// batch the channel is already closed by the time Tick returns.
func (r *Runtime) Tick() <-chan struct{} {
	ch := make(chan struct{})
	if !r.isFlushingSync && !hasPending(r) {
		close(ch)
		return ch
	}
	r.fullSettleWaiters = append(r.fullSettleWaiters, ch)
	return ch
}
