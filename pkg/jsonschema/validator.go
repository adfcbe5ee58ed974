// Package jsonschema validates JSON documents against JSON Schema
// definitions, backed by santhosh-tekuri/jsonschema.
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors is a collection of schema violations for one document.
type ValidationErrors []error

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate reports whether doc conforms to schema. A broken schema or
// unparseable document is an error, distinct from a valid schema that the
// document merely fails.
func Validate(doc, schema string) (bool, error) {
	compiled, err := compile(schema)
	if err != nil {
		return false, err
	}

	var value any
	if err := json.Unmarshal([]byte(doc), &value); err != nil {
		return false, fmt.Errorf("invalid JSON: %w", err)
	}

	return compiled.Validate(value) == nil, nil
}

// ValidateWithErrors is Validate with the individual schema violations
// broken out, one per leaf cause, for display.
func ValidateWithErrors(doc, schema string) (bool, ValidationErrors) {
	compiled, err := compile(schema)
	if err != nil {
		return false, ValidationErrors{err}
	}

	var value any
	if err := json.Unmarshal([]byte(doc), &value); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	err = compiled.Validate(value)
	if err == nil {
		return true, nil
	}

	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return false, leafCauses(ve)
	}
	return false, ValidationErrors{err}
}

func compile(schema string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return compiled, nil
}

// leafCauses flattens a validation error tree into its leaf violations,
// which carry the specific keyword failures worth displaying.
func leafCauses(ve *jsonschema.ValidationError) ValidationErrors {
	if len(ve.Causes) == 0 {
		location := ve.InstanceLocation
		if location == "" {
			location = "$"
		}
		return ValidationErrors{fmt.Errorf("%s: %s", location, ve.Message)}
	}
	var leaves ValidationErrors
	for _, cause := range ve.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}
