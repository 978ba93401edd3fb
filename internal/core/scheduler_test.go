package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDagScheduler(root node) (*DagScheduler[node], error) {
	info, err := NewDagInfo[node](root)
	if err != nil {
		return nil, err
	}
	return NewDagScheduler[node](info, NewOrderedStrategy[node](DefaultSelfCost[node])), nil
}

func TestDagSchedulerLinearChainSuccess(t *testing.T) {
	a := newNode("A")
	b := newNode("B", a)
	c := newNode("C", b)

	sched, err := newTestDagScheduler(c)
	require.NoError(t, err)

	assert.True(t, sched.HasPending())
	assert.Equal(t, []node{a}, sched.Next(5))

	sched.Complete(a, nil)
	assert.Equal(t, []node{b}, sched.Next(5))

	sched.Complete(b, nil)
	assert.Equal(t, []node{c}, sched.Next(5))

	sched.Complete(c, nil)
	assert.False(t, sched.HasPending())
	assert.True(t, sched.IsComplete())
	assert.Empty(t, sched.Failures())
}

func TestDagSchedulerFailureCascadeSkipsDependents(t *testing.T) {
	a := newNode("A")
	b := newNode("B", a)
	c := newNode("C", b)

	sched, err := newTestDagScheduler(c)
	require.NoError(t, err)

	sched.Next(5)
	sched.Complete(a, nil)
	assert.Equal(t, []node{b}, sched.Next(5))

	msg := "boom"
	sched.Complete(b, &msg)

	assert.False(t, sched.HasPending())
	assert.True(t, sched.IsComplete())
	assert.Equal(t, []WorkFailure[node]{{Node: b, Message: "boom"}}, sched.Failures())
}

func TestDagSchedulerIndependentSubtreeFailureDoesNotAffectSibling(t *testing.T) {
	x := newNode("X")
	root1 := newNode("Root1", x)
	y := newNode("Y")
	root2 := newNode("Root2", y)

	info, err := NewDagInfo[node](root1, root2)
	require.NoError(t, err)
	sched := NewDagScheduler[node](info, NewOrderedStrategy[node](DefaultSelfCost[node]))

	assert.ElementsMatch(t, []node{x, y}, sched.Next(5))

	msg := "failed"
	sched.Complete(x, &msg)
	sched.Complete(y, nil)

	assert.Equal(t, []node{root2}, sched.Next(5))
	sched.Complete(root2, nil)

	assert.True(t, sched.IsComplete())
	assert.Equal(t, []WorkFailure[node]{{Node: x, Message: "failed"}}, sched.Failures())
}
