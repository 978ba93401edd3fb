package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"taskcore/internal/core"
)

// Adapter wraps a zerolog.Logger so it satisfies core.Logger.
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter wraps l as a core.Logger.
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{logger: l}
}

// Printf logs format/args at info level. The core never calls this
// concurrently for the same node, but a logger shared across nodes (the
// base logger passed to PerNode) is safe for concurrent use because
// zerolog.Logger itself is.
func (a *Adapter) Printf(format string, args ...any) {
	a.logger.Info().Msgf(format, args...)
}

var _ core.Logger = (*Adapter)(nil)

// NewConsoleLogger builds a human-readable zerolog.Logger writing to w, the
// base logger the CLI constructs once per process.
func NewConsoleLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// PerNode returns a factory suitable for core.Run's log parameter: it binds
// a run id and the node's name as structured fields on every line that node
// emits, without requiring the core itself to know about either.
func PerNode[D any](base zerolog.Logger, runID string, name func(D) string) func(D) core.Logger {
	return func(n D) core.Logger {
		sub := base.With().Str("run_id", runID).Str("task", name(n)).Logger()
		return NewAdapter(sub)
	}
}
