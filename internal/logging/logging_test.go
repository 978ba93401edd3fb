package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterPrintfWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLogger(&buf, false)
	adapter := NewAdapter(base)

	adapter.Printf("task %s failed: %s", "build", "boom")

	require.NotZero(t, buf.Len())
	assert.Contains(t, buf.String(), "task build failed: boom")
}

func TestNewConsoleLoggerVerboseEnablesDebug(t *testing.T) {
	var quiet, verbose bytes.Buffer
	NewConsoleLogger(&quiet, false).Debug().Msg("hidden")
	NewConsoleLogger(&verbose, true).Debug().Msg("shown")

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "shown")
}

func TestPerNodeBindsRunIDAndTaskName(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLogger(&buf, false)

	factory := PerNode(base, "run-123", func(n string) string { return n })
	logger := factory("build")
	logger.Printf("starting")

	out := buf.String()
	assert.True(t, strings.Contains(out, "run-123"))
	assert.True(t, strings.Contains(out, "build"))
}
