package taskgraph

// Document is the top-level structure of a task-graph definition file.
type Document struct {
	SchemaVersion string     `json:"schema_version"`
	Tasks         []TaskSpec `json:"tasks"`
}

// TaskSpec is a single task entry as it appears in the JSON document,
// before dependency IDs are resolved into pointers.
type TaskSpec struct {
	ID   string   `json:"id"`
	Deps []string `json:"deps"`
}
