// Package logging adapts github.com/rs/zerolog to core.Logger and builds
// the per-node logger factory the scheduling core calls through.
package logging
