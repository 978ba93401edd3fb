package core

// SubWork is what a CompoundWork node expands into: a scheduler over its
// substitutive sub-DAG, plus a mandatory "finally" sub-scheduler that runs
// once the main sub-DAG has drained, success or failure. This is the
// facility behind hierarchical tasks such as "test: setup, run, teardown".
//
// DoFinally may be nil only as a defensive affordance for tests exercising
// the main sub-DAG in isolation; real CompoundWork implementations are
// expected to always supply one, since the finally sub-DAG's whole purpose
// is to run unconditionally.
type SubWork[D Node[D]] struct {
	Scheduler Scheduler[D]
	DoFinally Scheduler[D]
}

// CompoundWork is the opt-in capability a node may implement to be expanded
// into a sub-DAG instead of being handed to a worker directly. Only
// CompoundScheduler observes this capability.
type CompoundWork[D Node[D]] interface {
	SubWork() SubWork[D]
}

// compoundTag is the MultiScheduler tag attached to a compound node's main
// sub-scheduler, carrying everything CompoundScheduler.Complete needs once
// that sub-run drains.
type compoundTag[D Node[D]] struct {
	node      D
	doFinally Scheduler[D]
}

// CompoundScheduler wraps a MultiScheduler to implement sub-DAG expansion.
// The scheduler passed to NewCompoundScheduler (typically a top-level
// DagScheduler) is installed as the first, untagged sub-run; every
// CompoundWork node it yields is intercepted and expanded into its own
// sub-run instead of being handed to the distributor.
type CompoundScheduler[D Node[D]] struct {
	multi *MultiScheduler[D]
	// finalWork holds compound nodes whose main sub-DAG has already
	// succeeded; Next drains it by auto-completing each node against the
	// outer scheduler before pulling any further work, rather than ever
	// handing the compound node itself to a worker.
	finalWork *OrderedStrategy[D]
}

var _ Scheduler[stubNode] = (*CompoundScheduler[stubNode])(nil)

// NewCompoundScheduler wraps outer (the top-level graph's scheduler) to add
// compound-node expansion on top of it.
func NewCompoundScheduler[D Node[D]](outer Scheduler[D]) *CompoundScheduler[D] {
	multi := NewMultiScheduler[D]()
	multi.Add(outer, nil)
	return &CompoundScheduler[D]{
		multi:     multi,
		finalWork: NewOrderedStrategy[D](DefaultSelfCost[D]),
	}
}

// expand installs a compound node's main sub-scheduler as a new MultiScheduler
// sub-run, tagged so its eventual completion routes back through
// CompoundScheduler.Complete.
func (c *CompoundScheduler[D]) expand(node D, sw SubWork[D]) {
	c.multi.Add(sw.Scheduler, &compoundTag[D]{node: node, doFinally: sw.DoFinally})
}

// Next first drains any compound nodes whose sub-DAG already succeeded,
// auto-completing them against the outer scheduler without counting them
// against max, then pulls from the underlying MultiScheduler, routing any
// compound node it encounters through expansion instead of the returned
// slice, until max real work items are collected or no more are available.
func (c *CompoundScheduler[D]) Next(max int) []D {
	if max <= 0 {
		return nil
	}

	for c.finalWork.HasReady() {
		for _, node := range c.finalWork.Next(max) {
			c.multi.CompleteAndDrain(node, nil)
		}
	}

	out := make([]D, 0, max)
	for len(out) < max {
		items := c.multi.Next(max - len(out))
		if len(items) == 0 {
			break
		}
		for _, n := range items {
			if cw, ok := any(n).(CompoundWork[D]); ok {
				c.expand(n, cw.SubWork())
				continue
			}
			out = append(out, n)
		}
	}
	return out
}

// Complete routes a real worker's completion back through the
// MultiScheduler. If that completion drains a compound node's main sub-run,
// it installs the stored "finally" sub-scheduler and either marks the
// compound node ready-to-finalize (sub-DAG succeeded) or immediately fails
// it with CompoundFailureMessage, cascading to its reverse dependents in the
// outer scheduler.
func (c *CompoundScheduler[D]) Complete(node D, result *string) {
	tag, done, subFailures := c.multi.CompleteAndDrain(node, result)
	if !done {
		return
	}
	ct, ok := tag.(*compoundTag[D])
	if !ok {
		return // a plain sub-run (the outer graph, or a finally sub-DAG) drained; nothing more to do.
	}

	if ct.doFinally != nil {
		c.multi.Add(ct.doFinally, nil)
	}

	if len(subFailures) == 0 {
		c.finalWork.WorkReady(ct.node)
		return
	}
	msg := CompoundFailureMessage
	c.multi.CompleteAndDrain(ct.node, &msg)
}

func (c *CompoundScheduler[D]) HasPending() bool {
	return c.finalWork.HasReady() || c.multi.HasPending()
}

func (c *CompoundScheduler[D]) IsComplete() bool {
	return !c.finalWork.HasReady() && c.multi.IsComplete()
}

func (c *CompoundScheduler[D]) Failures() []WorkFailure[D] {
	return c.multi.Failures()
}
