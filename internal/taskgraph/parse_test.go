package taskgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMinimalJSON = `{
	"schema_version": "1",
	"tasks": []
}`

func TestParseValidMinimal(t *testing.T) {
	doc, err := Parse(strings.NewReader(validMinimalJSON))
	require.NoError(t, err)
	assert.Equal(t, "1", doc.SchemaVersion)
	assert.Empty(t, doc.Tasks)
}

func TestParseValidWithTasks(t *testing.T) {
	raw := `{
		"schema_version": "1",
		"tasks": [
			{"id": "setup", "deps": []},
			{"id": "build", "deps": ["setup"]}
		]
	}`
	doc, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, doc.Tasks, 2)
	assert.Equal(t, "build", doc.Tasks[1].ID)
	assert.Equal(t, []string{"setup"}, doc.Tasks[1].Deps)
}

func TestParseMissingSchemaVersion(t *testing.T) {
	raw := `{"tasks": []}`
	_, err := Parse(strings.NewReader(raw))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "schema_version", schemaErr.Field)
}

func TestParseMissingTasks(t *testing.T) {
	raw := `{"schema_version": "1"}`
	_, err := Parse(strings.NewReader(raw))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "tasks", schemaErr.Field)
}

func TestParseTaskMissingID(t *testing.T) {
	raw := `{"schema_version": "1", "tasks": [{"deps": []}]}`
	_, err := Parse(strings.NewReader(raw))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "tasks[0].id", schemaErr.Field)
}

func TestParseUnsupportedSchemaVersion(t *testing.T) {
	raw := `{"schema_version": "2", "tasks": []}`
	_, err := Parse(strings.NewReader(raw))
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	raw := `{"schema_version": "1", "tasks": [], "extra": true}`
	_, err := Parse(strings.NewReader(raw))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{not json`))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}
