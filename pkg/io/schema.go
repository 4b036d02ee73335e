package io

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed grid.schema.json
var gridSchemaJSON string

var gridSchema = jsonschema.MustCompileString("grid.schema.json", gridSchemaJSON)

// ValidateJSON checks raw JSON against the grid document schema.
func ValidateJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := gridSchema.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
