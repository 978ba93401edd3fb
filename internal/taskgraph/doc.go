// Package taskgraph provides a JSON task-graph document format and a
// concrete Task node that satisfies core.Node[*Task].
//
// A document is a flat list of tasks, each naming its own dependencies by
// ID. This package implements the same validation phases as a classic
// build-graph loader: parse, schema, and structural (duplicate IDs,
// dangling dependencies, cycles), all reported through typed errors.
package taskgraph
