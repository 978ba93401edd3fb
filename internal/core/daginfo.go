package core

// DagInfo is the static, shared-immutable snapshot of forward/reverse
// adjacency discovered from one or more root nodes.
//
// Construction performs a single traversal, visiting each node once
// (idempotent visit guarded by map presence), and does not detect cycles:
// callers promise acyclicity. DagInfo itself is never mutated after
// construction; each execution clones it into a run.
type DagInfo[D Node[D]] struct {
	forward map[D][]D // node -> its declared dependencies, discovery order
	reverse map[D][]D // node -> nodes that depend on it, discovery order
	order   []D       // every discovered node, in first-visit order
}

// NewDagInfo traverses the graph reachable from roots and freezes the
// forward/reverse adjacency.
//
// Accepting more than one root is a deliberate generalization beyond a
// single-root signature: it lets one DagInfo (and hence one Scheduler) span
// several disconnected trees in a single run. Run's public entry point
// still accepts one root and delegates to this multi-root traversal
// internally.
func NewDagInfo[D Node[D]](roots ...D) (*DagInfo[D], error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	forward := make(map[D][]D)
	reverse := make(map[D][]D)
	order := make([]D, 0)

	visited := make(map[D]bool)
	var stack []D
	for _, r := range roots {
		if !visited[r] {
			stack = append(stack, r)
			visited[r] = true
		}
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		deps := n.Dependencies()
		forward[n] = deps
		if _, ok := reverse[n]; !ok {
			reverse[n] = nil
		}
		order = append(order, n)

		for _, d := range deps {
			reverse[d] = append(reverse[d], n)
			if !visited[d] {
				visited[d] = true
				stack = append(stack, d)
			}
		}
	}

	return &DagInfo[D]{forward: forward, reverse: reverse, order: order}, nil
}

// Nodes returns every node discovered during construction, in first-visit
// order. Used by DagScheduler to seed initial readiness.
func (d *DagInfo[D]) Nodes() []D {
	out := make([]D, len(d.order))
	copy(out, d.order)
	return out
}

// run is the mutable, per-execution clone of a DagInfo. remaining tracks
// each node's outstanding forward dependencies; reverse tracks, for each
// node, the nodes that depend on it. Both are popped (key removed) as the
// node is resolved, so emptiness is a cheap completion check.
type run[D Node[D]] struct {
	remaining map[D]map[D]struct{}
	reverse   map[D]map[D]struct{}
}

func (d *DagInfo[D]) newRun() *run[D] {
	remaining := make(map[D]map[D]struct{}, len(d.forward))
	for n, deps := range d.forward {
		if len(deps) == 0 {
			continue
		}
		set := make(map[D]struct{}, len(deps))
		for _, dep := range deps {
			set[dep] = struct{}{}
		}
		remaining[n] = set
	}

	reverse := make(map[D]map[D]struct{}, len(d.reverse))
	for n, deps := range d.reverse {
		if len(deps) == 0 {
			continue
		}
		set := make(map[D]struct{}, len(deps))
		for _, dep := range deps {
			set[dep] = struct{}{}
		}
		reverse[n] = set
	}

	return &run[D]{remaining: remaining, reverse: reverse}
}

// seedReady returns every node whose remaining forward-dependency set is
// already empty (the leaves of the forward DAG); those nodes never get an
// entry in remaining to begin with, so there is nothing left to pop here.
func (r *run[D]) seedReady(all []D) []D {
	ready := make([]D, 0)
	for _, n := range all {
		if _, blocked := r.remaining[n]; !blocked {
			ready = append(ready, n)
		}
	}
	return ready
}

// completeSuccess handles a node's successful completion: for each reverse
// dependent of work, remove work from that dependent's remaining set; a
// dependent whose remaining set becomes empty is newly ready.
func (r *run[D]) completeSuccess(work D) (newlyReady []D) {
	dependents := r.reverse[work]
	delete(r.reverse, work)

	for dep := range dependents {
		set, ok := r.remaining[dep]
		if !ok {
			continue
		}
		delete(set, work)
		if len(set) == 0 {
			delete(r.remaining, dep)
			newlyReady = append(newlyReady, dep)
		}
	}
	return newlyReady
}

// clear cascades a failed or invalidated node's effect through the graph:
// it removes work from remaining (so it is never (re)scheduled) and
// recursively clears every reverse dependent, returning the full set of
// nodes invalidated by this cascade (excluding work itself, which the
// caller already knows failed or was the trigger).
func (r *run[D]) clear(work D) (invalidated []D) {
	delete(r.remaining, work)

	dependents := r.reverse[work]
	delete(r.reverse, work)

	for dep := range dependents {
		invalidated = append(invalidated, dep)
		invalidated = append(invalidated, r.clear(dep)...)
	}
	return invalidated
}

// blocked reports whether any node still has outstanding forward
// dependencies (i.e. is neither ready nor yet completed/invalidated).
func (r *run[D]) blocked() bool {
	return len(r.remaining) > 0
}

// reverseEmpty reports whether every node has had its reverse-dependency
// entry popped, one half of a scheduler's completion check.
func (r *run[D]) reverseEmpty() bool {
	return len(r.reverse) == 0
}
