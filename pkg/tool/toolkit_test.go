package tool_test

import (
	"context"
	"encoding/json"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	chain "github.com/mutablelogic/go-chain"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	tool "github.com/mutablelogic/go-chain/pkg/tool"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// FIXTURES

// weatherSchema has an enumerated unit field, so out-of-range values
// fail validation before the tool runs
func weatherSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"location": {Type: "string"},
			"unit":     {Type: "string", Enum: []any{"celsius", "fahrenheit"}},
		},
		Required: []string{"location"},
	}
}

func weatherTool(t *testing.T) tool.Tool {
	t.Helper()
	wt, err := tool.NewFunc("get_weather", "Get the current weather for a location", weatherSchema(),
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var args struct {
				Location string `json:"location"`
				Unit     string `json:"unit"`
			}
			if err := json.Unmarshal(input, &args); err != nil {
				return nil, err
			}
			return map[string]any{"location": args.Location, "temp": 21}, nil
		})
	if err != nil {
		t.Fatal(err)
	}
	return wt
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_toolkit_001(t *testing.T) {
	assert := assert.New(t)

	// Register and lookup
	tk, err := tool.NewToolkit(weatherTool(t))
	assert.NoError(err)
	assert.NotNil(tk.Lookup("get_weather"))
	assert.Nil(tk.Lookup("missing"))
	assert.Len(tk.Tools(), 1)
}

func Test_toolkit_002(t *testing.T) {
	assert := assert.New(t)

	// Invalid and duplicate names
	bad, err := tool.NewFunc("not a name", "bad", nil, func(context.Context, json.RawMessage) (any, error) {
		return nil, nil
	})
	assert.NoError(err)
	_, err = tool.NewToolkit(bad)
	assert.ErrorIs(err, chain.ErrBadParameter)

	_, err = tool.NewToolkit(weatherTool(t), weatherTool(t))
	assert.ErrorIs(err, chain.ErrConflict)
}

func Test_toolkit_003(t *testing.T) {
	assert := assert.New(t)

	// Run with valid input
	tk, err := tool.NewToolkit(weatherTool(t))
	assert.NoError(err)
	result, err := tk.Run(context.TODO(), "get_weather", json.RawMessage(`{"location":"Berlin","unit":"celsius"}`))
	assert.NoError(err)
	assert.Equal(map[string]any{"location": "Berlin", "temp": 21}, result)

	// Unknown tool
	_, err = tk.Run(context.TODO(), "missing", nil)
	assert.ErrorIs(err, chain.ErrNotFound)
}

func Test_toolkit_004(t *testing.T) {
	assert := assert.New(t)

	// Schema validation rejects a value outside the enumerated set
	tk, err := tool.NewToolkit(weatherTool(t))
	assert.NoError(err)
	_, err = tk.Run(context.TODO(), "get_weather", json.RawMessage(`{"location":"Berlin","unit":"kelvin"}`))
	assert.ErrorIs(err, chain.ErrBadParameter)

	// Missing required field
	_, err = tk.Run(context.TODO(), "get_weather", json.RawMessage(`{"unit":"celsius"}`))
	assert.ErrorIs(err, chain.ErrBadParameter)
}

func Test_toolkit_005(t *testing.T) {
	assert := assert.New(t)

	// Definitions are sorted by name and carry the input schema
	echo, err := tool.NewFunc("echo", "Echo the input", nil, func(_ context.Context, input json.RawMessage) (any, error) {
		return string(input), nil
	})
	assert.NoError(err)
	tk, err := tool.NewToolkit(weatherTool(t), echo)
	assert.NoError(err)

	defs, err := tk.Definitions()
	assert.NoError(err)
	assert.Len(defs, 2)
	assert.Equal("echo", defs[0].Name)
	assert.Equal("get_weather", defs[1].Name)
	assert.NotNil(defs[1].InputSchema)
}

func Test_toolkit_006(t *testing.T) {
	assert := assert.New(t)

	// RunCalls produces one tool_result block per call, in call order,
	// and reports failures as error results
	tk, err := tool.NewToolkit(weatherTool(t))
	assert.NoError(err)

	blocks, err := tk.RunCalls(context.TODO(),
		schema.ToolCall{ID: "call_1", Name: "get_weather", Input: json.RawMessage(`{"location":"Berlin"}`)},
		schema.ToolCall{ID: "call_2", Name: "missing"},
	)
	assert.NoError(err)
	assert.Len(blocks, 2)

	assert.NotNil(blocks[0].ToolResult)
	assert.Equal("call_1", blocks[0].ToolResult.ID)
	assert.False(blocks[0].ToolResult.IsError)

	assert.NotNil(blocks[1].ToolResult)
	assert.Equal("call_2", blocks[1].ToolResult.ID)
	assert.True(blocks[1].ToolResult.IsError)
}
