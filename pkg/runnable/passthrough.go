package runnable

import (
	"context"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// passthrough forwards its input unchanged
type passthrough struct{}

// assign merges stage results into a map input
type assign struct {
	stages chain.Runnable
}

var (
	_ chain.Runnable = (*passthrough)(nil)
	_ chain.Runnable = (*assign)(nil)
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Passthrough returns the identity stage: stateless, reusable and
// side-effect-free, it forwards any input value unchanged.
func Passthrough() chain.Runnable {
	return &passthrough{}
}

// Assign composes stages which receive the input map and whose results are
// merged into a copy of it: input keys are preserved, stage keys are added,
// and a stage result overrides an input key of the same name.
func Assign(stages map[string]chain.Runnable) chain.Runnable {
	return &assign{stages: Parallel(stages)}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Invoke returns the input unchanged
func (*passthrough) Invoke(_ context.Context, input any, _ ...opt.Opt) (any, error) {
	return input, nil
}

// Invoke runs the stages against the input map and merges the results
func (a *assign) Invoke(ctx context.Context, input any, opts ...opt.Opt) (any, error) {
	values, ok := input.(map[string]any)
	if !ok {
		return nil, chain.ErrBadParameter.Withf("assign requires a map input, got %T", input)
	}

	out, err := a.stages.Invoke(ctx, input, opts...)
	if err != nil {
		return nil, err
	}

	// Copy the input, then merge the stage results over it
	result := make(map[string]any, len(values))
	for k, v := range values {
		result[k] = v
	}
	for k, v := range out.(map[string]any) {
		result[k] = v
	}
	return result, nil
}
