package core

import "github.com/google/btree"

// ScheduleStrategy is the pluggable policy that decides which ready nodes
// run next. A Scheduler feeds it every node that becomes ready via WorkReady
// and pulls from it via Next.
type ScheduleStrategy[D Node[D]] interface {
	// WorkReady records that node is now eligible to run.
	WorkReady(node D)
	// HasReady reports whether any node is currently ready.
	HasReady() bool
	// Next pops up to max ready nodes and returns them. Selection among
	// equally-ordered nodes is deterministic given the strategy's total
	// order; the order of the returned slice itself is unspecified.
	Next(max int) []D
}

// orderedItem is the btree element backing OrderedStrategy: a ready node
// plus the total-order key computed for it at insertion time.
type orderedItem[D Node[D]] struct {
	node D
	cost int
	hash uint64
	seq  uint64 // insertion sequence, final tiebreak for strict total order
}

// OrderedStrategy is a ScheduleStrategy backed by a sorted set keyed by a
// caller-supplied cost, with hash and insertion order as tiebreaks so that
// distinct nodes never collapse into one key. A btree.BTreeG orders items by
// a Less function alone; two items for which neither is Less than the other
// are treated as equal and overwrite each other on insert, so cost and hash
// ties still need the monotonic seq to keep every ready node distinct. Next
// pops from the high end, so the highest-cost ready node runs first.
type OrderedStrategy[D Node[D]] struct {
	cost func(D) int
	tree *btree.BTreeG[orderedItem[D]]
	next uint64
}

// NewOrderedStrategy builds an OrderedStrategy ordering ready nodes by
// cost(node), highest first, with ties broken by node hash and then
// insertion order.
func NewOrderedStrategy[D Node[D]](cost func(D) int) *OrderedStrategy[D] {
	less := func(a, b orderedItem[D]) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		if a.hash != b.hash {
			return a.hash < b.hash
		}
		return a.seq < b.seq
	}
	return &OrderedStrategy[D]{
		cost: cost,
		tree: btree.NewG[orderedItem[D]](32, less),
	}
}

func (s *OrderedStrategy[D]) WorkReady(node D) {
	item := orderedItem[D]{node: node, cost: s.cost(node), hash: node.Hash(), seq: s.next}
	s.next++
	s.tree.ReplaceOrInsert(item)
}

func (s *OrderedStrategy[D]) HasReady() bool {
	return s.tree.Len() > 0
}

func (s *OrderedStrategy[D]) Next(max int) []D {
	if max <= 0 {
		return nil
	}
	out := make([]D, 0, max)
	for len(out) < max {
		item, ok := s.tree.DeleteMax()
		if !ok {
			break
		}
		out = append(out, item.node)
	}
	return out
}
