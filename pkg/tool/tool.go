package tool

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	chain "github.com/mutablelogic/go-chain"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is a named, schema-validated callable which a model may choose
// to invoke with structured arguments
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// fn is a function-backed tool
type fn struct {
	name        string
	description string
	schema      *jsonschema.Schema
	run         func(ctx context.Context, input json.RawMessage) (any, error)
}

var _ Tool = (*fn)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFunc creates a tool from a function and an input schema. The schema
// may be nil for tools which take no arguments.
func NewFunc(name, description string, schema *jsonschema.Schema, run func(ctx context.Context, input json.RawMessage) (any, error)) (Tool, error) {
	if run == nil {
		return nil, chain.ErrBadParameter.With("tool function is required")
	}
	return &fn{
		name:        name,
		description: description,
		schema:      schema,
		run:         run,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (t *fn) Name() string {
	return t.name
}

func (t *fn) Description() string {
	return t.description
}

func (t *fn) Schema() (*jsonschema.Schema, error) {
	return t.schema, nil
}

func (t *fn) Run(ctx context.Context, input json.RawMessage) (any, error) {
	return t.run(ctx, input)
}
