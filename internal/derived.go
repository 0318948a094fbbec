package internal

// NewDerived creates a Derived<T>: both a reaction (has deps) and a
// source (has a cached value and downstream reactions). Lazy-first: the
// node starts Dirty and is only computed the first time it is read, never
// eagerly at construction.
func (r *Runtime) NewDerived(compute func() any, equals func(a, b any) bool) *Node {
	if equals == nil {
		equals = EqualsSafe
	}

	n := &Node{
		kind:    KindDerived,
		state:   StateDirty,
		compute: compute,
		equals:  equals,
		rt:      r,
	}
	n.owner = r.newChildOwner()
	n.owner.OnDispose(func() {
		n.AddFlag(FlagDestroyed)
		n.clearDeps()
		n.state = StateDirty
		n.initialized = false
	})

	if r.activeOwner == nil {
		n.AddFlag(FlagUnowned)
	}

	return n
}

// updateDerived is the iterative (no host-stack-recursion) revalidation
// pass: it walks down through not-yet-clean derived deps first ("push deps
// first" policy, which is what gives glitch-freedom), then walks back
// up computing or clearing each node once its own deps are settled.
func updateDerived(n *Node) {
	if n.state == StateClean {
		return
	}

	stack := make([]*Node, 0, 8)
	stack = append(stack, n)

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.state == StateClean {
			stack = stack[:len(stack)-1]
			continue
		}

		if !top.initialized {
			computeDerived(top)
			stack = stack[:len(stack)-1]
			continue
		}

		pushedChild := false
		for _, d := range top.deps {
			if d.kind == KindDerived && d.state != StateClean {
				stack = append(stack, d)
				pushedChild = true
				break
			}
		}
		if pushedChild {
			continue
		}

		switch top.state {
		case StateDirty:
			computeDerived(top)
		case StateMaybeDirty:
			if maybeDirtyDepsChanged(top) {
				computeDerived(top)
			} else {
				top.state = StateClean
			}
		}

		stack = stack[:len(stack)-1]
	}
}

// maybeDirtyDepsChanged reports whether a maybe-dirty reaction actually
// needs to rerun: it does only if some dep's write_version is newer than
// what was recorded at the end of this reaction's last successful run.
func maybeDirtyDepsChanged(n *Node) bool {
	for i, d := range n.deps {
		if d.writeVersion > n.depVersions[i] {
			return true
		}
	}
	return false
}

// computeDerived executes the derived's compute function under its own
// dependency tracking, diffs deps, and bumps the write-version only if the
// new value actually differs.
func computeDerived(n *Node) {
	n.owner.DisposeChildren() // drop effects/nested deriveds created by the previous run
	n.owner.DrainCleanups()   // run any OnCleanup registered by the previous compute

	n.AddFlag(FlagComputing)
	beginRun(n)

	oldValue := n.value
	hadValue := n.initialized

	// A panicking compute is not recovered here (unlike an effect, a
	// derived has no "next scheduled run" to retry on): finishRun still
	// runs so the dep diff reflects whatever was read before the panic,
	// keeping the engine's bookkeeping consistent, then the panic continues
	// propagating to whatever caller triggered this revalidation.
	var newValue any
	func() {
		defer func() {
			n.RemoveFlag(FlagComputing)
			if r := recover(); r != nil {
				finishRun(n)
				panic(r)
			}
		}()
		runWithReaction(n, func() {
			newValue = n.compute()
		})
	}()

	n.initialized = true
	finishRun(n)

	if !hadValue || !n.equals(oldValue, newValue) {
		n.value = newValue
		n.rt.writeVersionCounter++
		n.writeVersion = n.rt.writeVersionCounter
	}

	n.depVersions = make([]uint64, len(n.deps))
	for i, d := range n.deps {
		n.depVersions[i] = d.writeVersion
	}

	n.state = StateClean
}
