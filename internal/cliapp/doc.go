// Package cliapp wires the scheduling core to a Cobra command tree: it loads
// a JSON task-graph file, builds the per-node logger factory core.Run
// expects, reports any hook manifests found under --hooks-dir, drives the
// run, and maps the result onto the process exit-code taxonomy the rest of
// this repository's CLI uses. No lifecycle hooks are passed to core.Run.
package cliapp
