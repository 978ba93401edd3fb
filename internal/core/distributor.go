package core

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"
)

// doneMsg is one completion publication on the Distributor's completion
// queue: a worker goroutine is the sole writer, the driving loop the sole
// reader.
type doneMsg[D any] struct {
	node   D
	result *string
}

// Distributor owns the worker pool and the completion queue, and drives a
// Scheduler to completion with bounded concurrency.
type Distributor[D Node[D]] struct {
	scheduler Scheduler[D]
	workers   int
	name      func(D) string
	action    func(context.Context, D) *string
	log       func(D) Logger
	hooks     LifecycleHooks
}

// NewDistributor validates its arguments and returns a Distributor ready to
// Run. name and action are required; log and hooks default to no-ops when
// nil.
func NewDistributor[D Node[D]](
	scheduler Scheduler[D],
	workers int,
	name func(D) string,
	action func(context.Context, D) *string,
	log func(D) Logger,
	hooks LifecycleHooks,
) (*Distributor[D], error) {
	if workers <= 0 {
		return nil, ErrInvalidMaxWorkers
	}
	if name == nil {
		return nil, fmt.Errorf("distributor: name function is required")
	}
	if action == nil {
		return nil, fmt.Errorf("distributor: action function is required")
	}
	if log == nil {
		log = func(D) Logger { return nopLogger{} }
	}
	return &Distributor[D]{
		scheduler: scheduler,
		workers:   workers,
		name:      name,
		action:    action,
		log:       log,
		hooks:     hooksOrNop(hooks),
	}, nil
}

// Run drives the scheduler until every reachable node has completed,
// failed, or been invalidated, returning the accumulated failure list. A
// scheduler-invariant violation aborts the run and is returned as an error;
// any other recovered panic is re-raised.
func (d *Distributor[D]) Run(ctx context.Context) (failures []WorkFailure[D], err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() {
		if r := recover(); r != nil {
			err = recoverInvariant(r)
		}
	}()

	d.hooks.BeforeRun(ctx)
	defer d.hooks.AfterRun(ctx)

	completions := make(chan doneMsg[D], d.workers)
	var wg conc.WaitGroup
	running := 0

	for {
		if running < d.workers && d.scheduler.HasPending() {
			available := d.workers - running
			items := d.scheduler.Next(available)
			if len(items) > available {
				raiseInvariant(&SchedulerInvariantError{
					Requested: available, Returned: len(items), HasReady: true,
					Msg: "scheduler returned more items than requested",
				})
			}
			if len(items) == 0 && running == 0 {
				raiseInvariant(&SchedulerInvariantError{
					Requested: available, Returned: 0, HasReady: true,
					Msg: "scheduler reports pending work but yielded nothing while idle",
				})
			}
			for _, node := range items {
				node := node
				running++
				wg.Go(func() {
					completions <- d.runOne(ctx, node)
				})
			}
		}

		if running == 0 && !d.scheduler.HasPending() {
			break
		}

		msg := <-completions
		running--
		d.scheduler.Complete(msg.node, msg.result)
	}

	wg.Wait()
	return d.scheduler.Failures(), nil
}

// runOne calls action for node inside a per-node logger and lifecycle hook
// pair, trapping any panic and wrapping both panics and ordinary failures
// into the "Error running <name>: <message>" form the external interface
// promises.
func (d *Distributor[D]) runOne(ctx context.Context, node D) doneMsg[D] {
	name := d.name(node)
	logger := loggerOrNop(d.log(node))

	d.hooks.BeforeNode(ctx, name)
	defer d.hooks.AfterNode(ctx, name)

	return doneMsg[D]{node: node, result: d.trap(ctx, node, name, logger)}
}

func (d *Distributor[D]) trap(ctx context.Context, node D, name string, logger Logger) (failure *string) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("Error running %s: %v", name, r)
			logger.Printf("%s", msg)
			failure = &msg
		}
	}()

	result := d.action(ctx, node)
	if result == nil {
		return nil
	}
	msg := fmt.Sprintf("Error running %s: %s", name, *result)
	logger.Printf("%s", msg)
	return &msg
}

// Run is the package's single external entry point: build a DagInfo from
// root, drive it with a critical-path-first strategy wrapped for compound
// sub-DAG expansion, and report the accumulated failure list.
func Run[D Node[D]](
	ctx context.Context,
	root D,
	name func(D) string,
	action func(context.Context, D) *string,
	maximumTasks int,
	log func(D) Logger,
	hooks LifecycleHooks,
) ([]WorkFailure[D], error) {
	if maximumTasks <= 0 {
		return nil, ErrInvalidMaxWorkers
	}

	info, err := NewDagInfo[D](root)
	if err != nil {
		return nil, err
	}

	outer := NewDagScheduler[D](info, NewMaxPathStrategy[D](info, nil))
	scheduler := NewCompoundScheduler[D](outer)

	dist, err := NewDistributor[D](scheduler, maximumTasks, name, action, log, hooks)
	if err != nil {
		return nil, err
	}
	return dist.Run(ctx)
}
