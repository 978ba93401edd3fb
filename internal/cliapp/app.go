package cliapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"taskcore/internal/core"
	"taskcore/internal/hooks"
	"taskcore/internal/logging"
	"taskcore/internal/taskgraph"
)

// Exit codes mirror the demo CLI's taxonomy: 0 for success, 1 for a graph
// that fails validation, 2 for bad arguments or other system-level setup
// failure, 3 for one or more nodes failing during a run.
const (
	ExitSuccess          = 0
	ExitValidationError  = 1
	ExitArgOrSystemError = 2
	ExitExecutionFailure = 3
)

// rootTaskName is the synthesized aggregator task id (see taskgraph.Graph.Root)
// used when a document has more than one terminal task. It never names real
// work and is filtered out of reported output.
const rootTaskName = "__root__"

// runOptions collects the flag values every subcommand that loads a graph
// needs, decoupled from Cobra so it can be exercised directly from tests.
type runOptions struct {
	GraphPath string
	Workers   int
	Verbose   bool
	HooksDir  string
}

func openGraph(path string) (*taskgraph.Graph, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: graph path is required", errArg)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errArg, err)
	}
	defer f.Close()
	return taskgraph.Load(f)
}

var errArg = errors.New("cliapp: argument error")

func isArgError(err error) bool {
	return errors.Is(err, errArg)
}

// runGraph loads, validates, and executes a task-graph file, printing
// progress to stdout/stderr and returning the exit code to use for the
// process. It is the shared body of the "run" and "plan" subcommands; plan
// short-circuits before scheduling by never being called with execute=true.
func runGraph(ctx context.Context, opts runOptions, stdout, stderr io.Writer, execute bool) int {
	graph, err := openGraph(opts.GraphPath)
	if err != nil {
		fmt.Fprintln(stderr, describeLoadError(err))
		if isArgError(err) {
			return ExitArgOrSystemError
		}
		return ExitValidationError
	}

	if !execute {
		printPlan(stdout, graph)
		return ExitSuccess
	}

	base := logging.NewConsoleLogger(stderr, opts.Verbose)
	logFactory := logging.PerNode[*taskgraph.Task](base, graph.RunID, func(t *taskgraph.Task) string { return t.ID })

	// --hooks-dir only discovers and reports hook manifests found on disk; it
	// does not wire the run itself to any hook behavior, since hooks are
	// compiled Go types (RuntimeHook), not something a manifest alone can
	// instantiate. A caller embedding this package links RuntimeHook
	// implementations directly and passes a *hooks.Engine into core.Run.
	var lifecycle core.LifecycleHooks
	if opts.HooksDir != "" {
		reg, discoverErrs := hooks.DiscoverAndRegister(opts.HooksDir, logging.NewAdapter(base))
		for _, e := range discoverErrs {
			fmt.Fprintf(stderr, "hooks: %v\n", e)
		}
		for _, m := range reg.Manifests {
			fmt.Fprintf(stderr, "hooks: discovered %s (%s)\n", m.HookID, m.Version)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	name := func(t *taskgraph.Task) string { return t.ID }
	action := func(ctx context.Context, t *taskgraph.Task) *string {
		if t.ID == rootTaskName {
			return nil
		}
		base.Info().Str("task", t.ID).Msg("running")
		return nil
	}

	failures, err := core.Run[*taskgraph.Task](ctx, graph.Root(), name, action, workers, logFactory, lifecycle)
	if err != nil {
		fmt.Fprintf(stderr, "run: %v\n", err)
		return ExitArgOrSystemError
	}

	reported := reportableFailures(failures)
	for _, f := range reported {
		fmt.Fprintf(stderr, "FAILED %s: %s\n", f.Node.ID, f.Message)
	}
	if len(reported) > 0 {
		fmt.Fprintf(stdout, "%d task(s) failed\n", len(reported))
		return ExitExecutionFailure
	}

	fmt.Fprintln(stdout, "all tasks completed")
	return ExitSuccess
}

// reportableFailures drops the synthesized root aggregator from a failure
// list; it never runs real work and would otherwise look like a task to an
// operator reading output.
func reportableFailures(failures []core.WorkFailure[*taskgraph.Task]) []core.WorkFailure[*taskgraph.Task] {
	out := make([]core.WorkFailure[*taskgraph.Task], 0, len(failures))
	for _, f := range failures {
		if f.Node.ID == rootTaskName {
			continue
		}
		out = append(out, f)
	}
	return out
}

func printPlan(w io.Writer, graph *taskgraph.Graph) {
	ids := make([]string, 0, len(graph.Tasks))
	for id := range graph.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	fmt.Fprintf(w, "run %s: %d task(s)\n", graph.RunID, len(ids))
	for _, id := range ids {
		t := graph.Tasks[id]
		fmt.Fprintf(w, "  %s deps=%v\n", t.ID, t.Deps)
	}
}

func describeLoadError(err error) string {
	var dup *taskgraph.DuplicateIDError
	var dangling *taskgraph.DanglingDependencyError
	var cycle *taskgraph.CycleError
	switch {
	case errors.As(err, &dup):
		return fmt.Sprintf("invalid graph: %v", dup)
	case errors.As(err, &dangling):
		return fmt.Sprintf("invalid graph: %v", dangling)
	case errors.As(err, &cycle):
		return fmt.Sprintf("invalid graph: %v", cycle)
	default:
		return fmt.Sprintf("invalid graph: %v", err)
	}
}
