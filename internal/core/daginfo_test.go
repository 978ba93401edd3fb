package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDagInfoLinearChain(t *testing.T) {
	a := newNode("A")
	b := newNode("B", a)
	c := newNode("C", b)

	info, err := NewDagInfo[node](c)
	require.NoError(t, err)
	assert.ElementsMatch(t, []node{a, b, c}, info.Nodes())
}

func TestNewDagInfoNoRoots(t *testing.T) {
	_, err := NewDagInfo[node]()
	assert.ErrorIs(t, err, ErrNoRoots)
}

func TestNewDagInfoIndependentSubtrees(t *testing.T) {
	x := newNode("X")
	root1 := newNode("Root1", x)
	y := newNode("Y")
	root2 := newNode("Root2", y)

	info, err := NewDagInfo[node](root1, root2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []node{x, root1, y, root2}, info.Nodes())
}

func TestRunSeedReadyAndCompleteSuccess(t *testing.T) {
	a := newNode("A")
	b := newNode("B", a)
	c := newNode("C", b)

	info, err := NewDagInfo[node](c)
	require.NoError(t, err)

	r := info.newRun()
	ready := r.seedReady(info.Nodes())
	assert.Equal(t, []node{a}, ready)
	assert.True(t, r.blocked())

	assert.Equal(t, []node{b}, r.completeSuccess(a))
	assert.Equal(t, []node{c}, r.completeSuccess(b))
	assert.Empty(t, r.completeSuccess(c))

	assert.False(t, r.blocked())
	assert.True(t, r.reverseEmpty())
}

func TestRunClearCascadesThroughDependents(t *testing.T) {
	a := newNode("A")
	b := newNode("B", a)
	c := newNode("C", b)

	info, err := NewDagInfo[node](c)
	require.NoError(t, err)

	r := info.newRun()
	r.seedReady(info.Nodes())

	invalidated := r.clear(a)
	assert.ElementsMatch(t, []node{b, c}, invalidated)
	assert.False(t, r.blocked())
	assert.True(t, r.reverseEmpty())
}

func TestRunSeedReadyFanOut(t *testing.T) {
	l1 := newNode("L1")
	l2 := newNode("L2")
	l3 := newNode("L3")
	root := newNode("Root", l1, l2, l3)

	info, err := NewDagInfo[node](root)
	require.NoError(t, err)

	r := info.newRun()
	ready := r.seedReady(info.Nodes())
	assert.ElementsMatch(t, []node{l1, l2, l3}, ready)

	assert.Empty(t, r.completeSuccess(l1))
	assert.Empty(t, r.completeSuccess(l2))
	assert.Equal(t, []node{root}, r.completeSuccess(l3))
}
