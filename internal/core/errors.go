package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	// ErrInvalidMaxWorkers indicates a non-positive maximumTasks/workers
	// argument to Run.
	ErrInvalidMaxWorkers = errors.New("maximum concurrent tasks must be > 0")

	// ErrNoRoots indicates NewDagInfo was called with zero root nodes.
	ErrNoRoots = errors.New("at least one root node is required")

	// ErrSchedulerInvariant indicates the scheduler violated one of the
	// Distributor's contractual invariants: it returned more than the
	// requested budget, or returned nothing while idle with pending work.
	// Both are programmer errors in a ScheduleStrategy or Scheduler
	// implementation, not runtime conditions a caller can recover from, so
	// Run aborts and propagates them.
	ErrSchedulerInvariant = errors.New("scheduler invariant violated")

	// ErrUnknownSubRun's text is the message of the SchedulerInvariantError
	// raised when MultiScheduler.Complete is called for a node that is not
	// currently owned by any live sub-run. That error wraps
	// ErrSchedulerInvariant, not ErrUnknownSubRun.
	ErrUnknownSubRun = errors.New("completion for node with no owning sub-run")
)

// SchedulerInvariantError wraps ErrSchedulerInvariant with structured detail
// about the violation observed, for callers that want more than
// errors.Is(err, ErrSchedulerInvariant).
type SchedulerInvariantError struct {
	Requested int // budget passed to next(max)
	Returned  int // items actually returned
	HasReady  bool
	Msg       string
}

func (e *SchedulerInvariantError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s (requested=%d returned=%d hasReady=%t)",
		ErrSchedulerInvariant.Error(), e.Msg, e.Requested, e.Returned, e.HasReady)
}

func (e *SchedulerInvariantError) Unwrap() error { return ErrSchedulerInvariant }

// CompoundFailureMessage is the fixed message recorded for a compound node
// whose sub-DAG failed. It is a var, not a const, so tests can reference it
// without retyping the literal; its value is part of the engine's
// observable contract and must not change.
var CompoundFailureMessage = "One or more subtasks failed"

// schedulerInvariantPanic carries a programmer error across a panic/recover
// boundary at the top of Run, so a misbehaving ScheduleStrategy/Scheduler
// implementation aborts the run with a returned error instead of crashing
// the caller's process.
type schedulerInvariantPanic struct{ err error }

func raiseInvariant(err error) {
	panic(schedulerInvariantPanic{err: err})
}

// recoverInvariant converts a recovered schedulerInvariantPanic into an
// error. Any other recovered value is re-panicked: only scheduler-invariant
// violations are meant to unwind this way.
func recoverInvariant(recovered any) error {
	p, ok := recovered.(schedulerInvariantPanic)
	if !ok {
		panic(recovered)
	}
	return p.err
}
