package internal

import "iter"

// Kind distinguishes the three node shapes sharing this header: a Source
// only ever appears as a dependency, an Effect only ever appears as a
// reaction, a Derived is both (it has deps like a reaction and a cached
// value + downstream reactions like a source).
type Kind uint8

const (
	KindSource Kind = iota
	KindDerived
	KindEffect
)

// State is the three-state freshness marking of a reaction: Clean (cache
// valid, nothing to do), MaybeDirty (some upstream source changed its
// write version but it is not yet known whether the cached value would
// actually differ), or Dirty (must recompute/rerun).
type State uint8

const (
	StateClean State = iota
	StateMaybeDirty
	StateDirty
)

type NodeFlags uint32

const (
	FlagDestroyed  NodeFlags = 1 << iota
	FlagPreserved            // survives an enclosing owner's per-run child cleanup
	FlagUnowned              // derived created outside any effect (see DESIGN.md ownership decision)
	FlagSyncEffect           // runs synchronously on create and on each dep change, no scheduling
	FlagRootEffect           // anchors a scheduling subtree
	FlagRenderEffect         // drains ahead of plain user effects within each generation
	FlagComputing            // currently inside compute(); writes must be rejected
	FlagInPending            // already present in the runtime's pending-reactions set
	FlagQueued               // not set by the scheduler; pending effects are deduped by FlagInPending
)

// Node is the common header for every reactive graph node: Source, Derived
// and Effect are all *Node, with Kind selecting which payload fields are
// meaningful. This mirrors a bitset-of-type-flags-on-a-common-header
// strategy instead of per-kind virtual dispatch, so the hot paths (read,
// write, revalidate) branch on a couple of fields rather than making an
// interface call.
type Node struct {
	kind  Kind
	state State
	flags NodeFlags

	// --- source side: value + version + downstream back-references ---
	value        any
	equals       func(a, b any) bool
	writeVersion uint64
	readVersion  uint64 // last run (curReadVer) of some reaction that has recorded this as a dep
	reactions    []*Node

	// --- reaction side: upstream deps + per-run scratch (Derived, Effect) ---
	deps        []*Node
	depVersions []uint64 // dep.writeVersion as observed at the end of this reaction's last run
	newDeps     []*Node
	skippedDeps int
	curReadVer  uint64 // this reaction's "current_read_version" for the run in flight

	// --- derived only ---
	compute     func() any
	initialized bool

	// --- effect only ---
	run func()

	// owner/effect tree: lifecycle (cleanups, child reactions, context values)
	// is independent of the dependency graph above.
	owner *Owner

	rt *Runtime
}

func (n *Node) HasFlag(f NodeFlags) bool { return n.flags&f != 0 }
func (n *Node) AddFlag(f NodeFlags)      { n.flags |= f }
func (n *Node) RemoveFlag(f NodeFlags)   { n.flags &^= f }

func (n *Node) IsReaction() bool { return n.kind == KindDerived || n.kind == KindEffect }
func (n *Node) IsSource() bool   { return n.kind == KindSource || n.kind == KindDerived }

// IsDisposed reports whether this reaction has been torn down: Read and
// Write check this first so a stale handle errors instead of silently
// operating on a half-reset node.
func (n *Node) IsDisposed() bool { return n.HasFlag(FlagDestroyed) }

// addReaction appends sub as a downstream consumer of n (a source or derived).
func (n *Node) addReaction(sub *Node) {
	n.reactions = append(n.reactions, sub)
}

// removeReaction removes sub from n's downstream consumers: a linear scan
// finds it, then swap-and-pop removes it, moving the last reaction into its
// slot (which changes the order markReactions later schedules them in).
func (n *Node) removeReaction(sub *Node) {
	for i, r := range n.reactions {
		if r == sub {
			last := len(n.reactions) - 1
			n.reactions[i] = n.reactions[last]
			n.reactions[last] = nil
			n.reactions = n.reactions[:last]
			return
		}
	}
}

// Reactions iterates n's downstream consumers over a defensive snapshot,
// since walking it (markReactions, scheduling) can cause mutation mid-walk.
func (n *Node) Reactions() iter.Seq[*Node] {
	snapshot := make([]*Node, len(n.reactions))
	copy(snapshot, n.reactions)
	return func(yield func(*Node) bool) {
		for _, r := range snapshot {
			if !yield(r) {
				return
			}
		}
	}
}

// Deps iterates n's current dependency list.
func (n *Node) Deps() iter.Seq[*Node] {
	deps := n.deps
	return func(yield func(*Node) bool) {
		for _, d := range deps {
			if !yield(d) {
				return
			}
		}
	}
}

// clearDeps removes n's back-references from every current dependency,
// keeping edges symmetric, and resets the per-run scratch state. Used on
// full disposal; normal recompute uses the diff in finishRun instead so
// the order-reuse optimisation has something to compare against.
func (n *Node) clearDeps() {
	for _, d := range n.deps {
		d.removeReaction(n)
	}
	n.deps = nil
	n.skippedDeps = 0
	n.newDeps = nil
}
