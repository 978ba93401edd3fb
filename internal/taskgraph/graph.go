package taskgraph

import (
	"io"
	"sort"

	"github.com/google/uuid"
)

// Task is a single unit of work loaded from a task-graph document. It
// satisfies core.Node[*Task]: identity is by pointer (so pointer equality
// and map-key use line up with document identity), Dependencies returns the
// resolved task pointers named in Deps, and Hash is stable across the life
// of the process.
type Task struct {
	ID   string
	Deps []string

	deps []*Task
}

// Dependencies returns the tasks this task depends on, resolved from Deps.
func (t *Task) Dependencies() []*Task { return t.deps }

// Hash returns a stable hash of the task's id.
func (t *Task) Hash() uint64 { return hashID(t.ID) }

// Graph is a validated, fully resolved task-graph ready to drive
// core.Run. RunID correlates log lines across one execution of the graph.
type Graph struct {
	RunID string
	Tasks map[string]*Task

	root *Task
}

// Load parses and builds a Graph from a JSON task-graph document.
func Load(r io.Reader) (*Graph, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return NewGraph(doc)
}

// NewGraph validates doc and resolves its task list into a Graph.
func NewGraph(doc *Document) (*Graph, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	tasks := make(map[string]*Task, len(doc.Tasks))
	for _, spec := range doc.Tasks {
		deps := make([]string, len(spec.Deps))
		copy(deps, spec.Deps)
		tasks[spec.ID] = &Task{ID: spec.ID, Deps: deps}
	}
	for _, spec := range doc.Tasks {
		t := tasks[spec.ID]
		t.deps = make([]*Task, len(spec.Deps))
		for i, depID := range spec.Deps {
			t.deps[i] = tasks[depID]
		}
	}

	g := &Graph{
		RunID: uuid.NewString(),
		Tasks: tasks,
	}
	g.root = g.buildRoot()
	return g, nil
}

// Root returns the single node to hand to core.Run. When the document names
// exactly one task nobody else depends on, that task is the root. When more
// than one task is terminal (nothing depends on it), Root synthesizes a
// virtual task depending on all of them, the same way a caller presenting
// several unconnected build targets to one scheduler run would.
func (g *Graph) Root() *Task {
	return g.root
}

func (g *Graph) buildRoot() *Task {
	dependedOn := make(map[string]bool, len(g.Tasks))
	for _, t := range g.Tasks {
		for _, d := range t.deps {
			dependedOn[d.ID] = true
		}
	}

	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var terminal []*Task
	for _, id := range ids {
		if !dependedOn[id] {
			terminal = append(terminal, g.Tasks[id])
		}
	}

	if len(terminal) == 1 {
		return terminal[0]
	}
	return &Task{ID: "__root__", deps: terminal}
}
