package tool

import (
	"context"
	"encoding/json"
	"sort"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	types "github.com/mutablelogic/go-chain/pkg/types"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Toolkit is a collection of tools with unique names
type Toolkit struct {
	tools map[string]Tool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools.
// Returns an error if any tool has an invalid or duplicate name.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]Tool),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in the toolkit, sorted by name
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.tools))
	for _, t := range tk.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Definitions returns provider-agnostic descriptors for all tools in the
// toolkit, sorted by name
func (tk *Toolkit) Definitions() ([]schema.ToolDefinition, error) {
	tools := tk.Tools()
	result := make([]schema.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		s, err := t.Schema()
		if err != nil {
			return nil, chain.ErrBadParameter.Withf("schema for tool %q: %v", t.Name(), err)
		}
		result = append(result, schema.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: s,
		})
	}
	return result, nil
}

// Register adds one or more tools to the toolkit.
// Returns an error if any tool has an invalid or duplicate name.
func (tk *Toolkit) Register(tools ...Tool) error {
	for _, t := range tools {
		name := t.Name()
		if !types.IsIdentifier(name) {
			return chain.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		if _, exists := tk.tools[name]; exists {
			return chain.ErrConflict.Withf("duplicate tool name: %q", name)
		}
		tk.tools[name] = t
	}
	return nil
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	return tk.tools[name]
}

// Run executes a tool by name with the given JSON input, validating the
// input against the tool's schema first. Returns an error if the tool is
// not found, the input does not match the schema, or the tool fails.
func (tk *Toolkit) Run(ctx context.Context, name string, input json.RawMessage) (any, error) {
	// Lookup the tool
	tool := tk.Lookup(name)
	if tool == nil {
		return nil, chain.ErrNotFound.Withf("tool not found: %q", name)
	}

	// Validate input against schema if provided
	if len(input) > 0 {
		s, err := tool.Schema()
		if err != nil {
			return nil, chain.ErrBadParameter.Withf("schema generation failed: %v", err)
		}
		if s != nil {
			// Unmarshal into a map for validation
			var mapInput map[string]any
			if err := json.Unmarshal(input, &mapInput); err != nil {
				return nil, chain.ErrBadParameter.Withf("failed to unmarshal JSON input: %v", err)
			}

			// Validate against schema
			resolved, err := s.Resolve(nil)
			if err != nil {
				return nil, chain.ErrBadParameter.Withf("schema resolution failed: %v", err)
			}
			if err := resolved.Validate(mapInput); err != nil {
				return nil, chain.ErrBadParameter.Withf("input validation failed: %v", err)
			}
		}
	}

	// Run the tool with raw JSON
	return tool.Run(ctx, input)
}

// RunCalls executes each tool call concurrently and returns one tool_result
// content block per call, in call order. Tool failures (including schema
// validation failures) are reported as error results rather than aborting
// the other calls.
func (tk *Toolkit) RunCalls(ctx context.Context, calls ...schema.ToolCall) ([]schema.ContentBlock, error) {
	results := make([]schema.ContentBlock, len(calls))

	var wg errgroup.Group
	for i, call := range calls {
		wg.Go(func() error {
			value, err := tk.Run(ctx, call.Name, call.Input)
			if err != nil {
				results[i] = schema.NewToolError(call.ID, call.Name, err)
			} else {
				results[i] = schema.NewToolResult(call.ID, call.Name, value)
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	defs, err := tk.Definitions()
	if err != nil {
		return err.Error()
	}
	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolkit makes the toolkit's tools available to the model for a request
func WithToolkit(tk *Toolkit) opt.Opt {
	if tk == nil {
		return opt.Error(chain.ErrBadParameter.With("toolkit is required"))
	}
	return opt.SetAny(opt.ToolkitKey, tk)
}
