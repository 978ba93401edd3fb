package taskgraph

import (
	"encoding/json"
	"fmt"
	"io"
)

// SupportedSchemaVersion is the only schema version this package accepts.
const SupportedSchemaVersion = "1"

// Parse decodes a task-graph document from JSON and checks its required
// fields. It does not perform structural validation (duplicate ids,
// dangling deps, cycles); call Validate for that.
func Parse(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, &SchemaError{Msg: fmt.Sprintf("invalid field type: %v", err)}
		}
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}

	if err := validateRequired(&doc); err != nil {
		return nil, err
	}
	if doc.SchemaVersion != SupportedSchemaVersion {
		return nil, &SchemaError{Field: "schema_version", Msg: fmt.Sprintf("unsupported version %q, expected %q", doc.SchemaVersion, SupportedSchemaVersion)}
	}
	return &doc, nil
}

func validateRequired(doc *Document) error {
	if doc.SchemaVersion == "" {
		return &SchemaError{Field: "schema_version", Msg: "required field is missing"}
	}
	if doc.Tasks == nil {
		return &SchemaError{Field: "tasks", Msg: "required field is missing"}
	}
	for i, t := range doc.Tasks {
		if t.ID == "" {
			return &SchemaError{Field: fmt.Sprintf("tasks[%d].id", i), Msg: "required field is missing"}
		}
	}
	return nil
}
