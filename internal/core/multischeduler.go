package core

// subRun is one member of a MultiScheduler: an owned sub-scheduler plus an
// opaque, caller-supplied tag. CompoundScheduler uses the tag to remember
// the "finally" sub-scheduler associated with a compound node's main
// sub-run.
type subRun[D Node[D]] struct {
	scheduler Scheduler[D]
	tag       any
	drained   bool
}

// MultiScheduler composes N sub-schedulers of the same element type D,
// round-robining Next across them and routing Complete back to whichever
// sub-scheduler owns the node.
type MultiScheduler[D Node[D]] struct {
	subs     []*subRun[D]
	owners   map[D]*subRun[D]
	rr       int
	failures []WorkFailure[D]
}

var _ Scheduler[stubNode] = (*MultiScheduler[stubNode])(nil)

// NewMultiScheduler returns an empty MultiScheduler; sub-schedulers are
// added with Add.
func NewMultiScheduler[D Node[D]]() *MultiScheduler[D] {
	return &MultiScheduler[D]{owners: make(map[D]*subRun[D])}
}

// Add registers a new sub-scheduler under tag. Safe to call at any time,
// including mid-run (this is how CompoundScheduler installs a node's
// substitutive sub-DAG, and later its "finally" sub-DAG).
func (m *MultiScheduler[D]) Add(scheduler Scheduler[D], tag any) {
	m.subs = append(m.subs, &subRun[D]{scheduler: scheduler, tag: tag})
}

// Next round-robins across live sub-runs, pulling one item at a time from
// each in turn until max items are collected or a full sweep yields
// nothing, recording each item's owning sub-run for Complete to route
// against later.
func (m *MultiScheduler[D]) Next(max int) []D {
	if max <= 0 || len(m.subs) == 0 {
		return nil
	}

	out := make([]D, 0, max)
	n := len(m.subs)
	for len(out) < max {
		progressed := false
		for i := 0; i < n && len(out) < max; i++ {
			sr := m.subs[(m.rr+i)%n]
			items := sr.scheduler.Next(1)
			if len(items) == 0 {
				continue
			}
			out = append(out, items[0])
			m.owners[items[0]] = sr
			progressed = true
		}
		if !progressed {
			break
		}
	}
	if n > 0 {
		m.rr = (m.rr + 1) % n
	}
	return out
}

// Complete satisfies the Scheduler[D] interface; it discards the
// tag/done/sub-failures detail CompoundScheduler needs. Use CompleteAndDrain
// directly when that detail matters.
func (m *MultiScheduler[D]) Complete(node D, result *string) {
	m.CompleteAndDrain(node, result)
}

// CompleteAndDrain routes a completion to its owning sub-run. If that
// sub-run newly becomes complete, its accumulated failures are merged into
// the combined Failures list, it is removed from the active rotation, and
// its tag is returned with done=true: the hook CompoundScheduler uses to
// trigger its "finally" phase.
func (m *MultiScheduler[D]) CompleteAndDrain(node D, result *string) (tag any, done bool, subFailures []WorkFailure[D]) {
	sr, ok := m.owners[node]
	if !ok {
		raiseInvariant(&SchedulerInvariantError{Msg: ErrUnknownSubRun.Error()})
	}
	delete(m.owners, node)

	sr.scheduler.Complete(node, result)

	if sr.drained || !sr.scheduler.IsComplete() {
		return nil, false, nil
	}
	sr.drained = true

	for i, candidate := range m.subs {
		if candidate == sr {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			break
		}
	}

	subFailures = sr.scheduler.Failures()
	m.failures = append(m.failures, subFailures...)
	return sr.tag, true, subFailures
}

func (m *MultiScheduler[D]) HasPending() bool {
	for _, sr := range m.subs {
		if sr.scheduler.HasPending() {
			return true
		}
	}
	return false
}

// IsComplete iff every sub-run has completed.
func (m *MultiScheduler[D]) IsComplete() bool {
	return len(m.subs) == 0
}

func (m *MultiScheduler[D]) Failures() []WorkFailure[D] {
	out := make([]WorkFailure[D], len(m.failures))
	copy(out, m.failures)
	return out
}
