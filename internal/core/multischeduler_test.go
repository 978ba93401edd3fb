package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiSchedulerRoundRobinAndDrain(t *testing.T) {
	n1 := newNode("n1")
	n2 := newNode("n2")

	s1, err := newTestDagScheduler(n1)
	require.NoError(t, err)
	s2, err := newTestDagScheduler(n2)
	require.NoError(t, err)

	multi := NewMultiScheduler[node]()
	multi.Add(s1, "t1")
	multi.Add(s2, "t2")

	assert.True(t, multi.HasPending())
	assert.ElementsMatch(t, []node{n1, n2}, multi.Next(2))

	tag, done, failures := multi.CompleteAndDrain(n1, nil)
	assert.True(t, done)
	assert.Equal(t, "t1", tag)
	assert.Empty(t, failures)
	assert.False(t, multi.IsComplete())

	tag, done, failures = multi.CompleteAndDrain(n2, nil)
	assert.True(t, done)
	assert.Equal(t, "t2", tag)
	assert.Empty(t, failures)
	assert.True(t, multi.IsComplete())
}

func TestMultiSchedulerAddMidRun(t *testing.T) {
	n1 := newNode("n1")
	s1, err := newTestDagScheduler(n1)
	require.NoError(t, err)

	multi := NewMultiScheduler[node]()
	multi.Add(s1, nil)
	assert.Equal(t, []node{n1}, multi.Next(5))

	n2 := newNode("n2")
	s2, err := newTestDagScheduler(n2)
	require.NoError(t, err)
	multi.Add(s2, nil)

	assert.Equal(t, []node{n2}, multi.Next(5))
	// n2 is in flight, neither ready nor blocked, so nothing is pending.
	assert.False(t, multi.HasPending())
}

func TestMultiSchedulerCompletingUnknownNodePanics(t *testing.T) {
	multi := NewMultiScheduler[node]()
	assert.Panics(t, func() {
		multi.Complete(newNode("ghost"), nil)
	})
}

func TestMultiSchedulerMergesFailuresAcrossSubRuns(t *testing.T) {
	a := newNode("a")
	b := newNode("b")

	s1, err := newTestDagScheduler(a)
	require.NoError(t, err)
	s2, err := newTestDagScheduler(b)
	require.NoError(t, err)

	multi := NewMultiScheduler[node]()
	multi.Add(s1, nil)
	multi.Add(s2, nil)
	multi.Next(2)

	msgA := "bad-a"
	multi.Complete(a, &msgA)
	multi.Complete(b, nil)

	assert.Equal(t, []WorkFailure[node]{{Node: a, Message: "bad-a"}}, multi.Failures())
}
