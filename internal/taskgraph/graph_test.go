package taskgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraphResolvesSingleTerminalRoot(t *testing.T) {
	doc := &Document{Tasks: []TaskSpec{
		{ID: "setup"},
		{ID: "build", Deps: []string{"setup"}},
		{ID: "test", Deps: []string{"build"}},
	}}
	g, err := NewGraph(doc)
	require.NoError(t, err)

	root := g.Root()
	require.Equal(t, "test", root.ID)
	require.Len(t, root.Dependencies(), 1)
	assert.Equal(t, "build", root.Dependencies()[0].ID)
	assert.Equal(t, "setup", root.Dependencies()[0].Dependencies()[0].ID)
	assert.NotEmpty(t, g.RunID)
}

func TestNewGraphSynthesizesRootForMultipleTerminals(t *testing.T) {
	doc := &Document{Tasks: []TaskSpec{
		{ID: "x"},
		{ID: "rootA", Deps: []string{"x"}},
		{ID: "y"},
		{ID: "rootB", Deps: []string{"y"}},
	}}
	g, err := NewGraph(doc)
	require.NoError(t, err)

	root := g.Root()
	assert.Equal(t, "__root__", root.ID)
	ids := []string{root.Dependencies()[0].ID, root.Dependencies()[1].ID}
	assert.ElementsMatch(t, []string{"rootA", "rootB"}, ids)
}

func TestNewGraphRejectsInvalidDocument(t *testing.T) {
	doc := &Document{Tasks: []TaskSpec{
		{ID: "a", Deps: []string{"ghost"}},
	}}
	_, err := NewGraph(doc)
	var danglingErr *DanglingDependencyError
	require.ErrorAs(t, err, &danglingErr)
}

func TestLoadParsesAndBuildsGraph(t *testing.T) {
	raw := `{
		"schema_version": "1",
		"tasks": [
			{"id": "setup", "deps": []},
			{"id": "build", "deps": ["setup"]},
			{"id": "test",  "deps": ["build"]}
		]
	}`
	g, err := Load(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "test", g.Root().ID)
	assert.Len(t, g.Tasks, 3)
}
