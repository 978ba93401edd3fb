package core

// DefaultSelfCost is the cost assigned to every node when no cost function
// is supplied to NewMaxPathStrategy.
func DefaultSelfCost[D Node[D]](D) int { return 1 }

// NewMaxPathStrategy computes, for every node in info, the length of the
// longest path from that node through its reverse edges, the node's own
// cost plus the maximum cost among the nodes that depend on it, and wires
// an OrderedStrategy that runs the highest-cost-first node whenever more
// than one node is ready. A node at the head of a long downstream chain
// then runs ahead of a node whose completion would not lengthen any
// critical path.
//
// selfCost may be nil, in which case DefaultSelfCost (constant 1) is used.
// It is a plain func(D) int rather than a struct field so a caller that
// knows per-node relative weight (a historical duration estimate, say) can
// supply it without forking OrderedStrategy.
func NewMaxPathStrategy[D Node[D]](info *DagInfo[D], selfCost func(D) int) *OrderedStrategy[D] {
	if selfCost == nil {
		selfCost = DefaultSelfCost[D]
	}

	memo := make(map[D]int, len(info.order))
	var costOf func(D) int
	costOf = func(n D) int {
		if c, ok := memo[n]; ok {
			return c
		}
		// Mark in-progress so a (disallowed) cycle terminates rather
		// than recursing forever; acyclicity is the caller's promise.
		memo[n] = selfCost(n)

		best := 0
		for _, dependent := range info.reverse[n] {
			if c := costOf(dependent); c > best {
				best = c
			}
		}
		total := selfCost(n) + best
		memo[n] = total
		return total
	}

	for _, n := range info.order {
		costOf(n)
	}

	return NewOrderedStrategy[D](func(n D) int { return memo[n] })
}
