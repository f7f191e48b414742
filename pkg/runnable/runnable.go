package runnable

import (
	"context"
	"fmt"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	otel "go.opentelemetry.io/otel"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Func adapts a plain function into a Runnable stage
type Func func(ctx context.Context, input any) (any, error)

// sequence invokes stages in order, feeding each stage's output
// into the next
type sequence struct {
	stages []chain.Runnable
}

// bound wraps a Runnable with options applied on every invocation
type bound struct {
	chain.Runnable
	opts []opt.Opt
}

var (
	_ chain.Runnable = (Func)(nil)
	_ chain.Runnable = (*sequence)(nil)
	_ chain.Runnable = (*bound)(nil)
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var tracer = otel.Tracer("github.com/mutablelogic/go-chain/pkg/runnable")

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Sequence composes stages into a pipeline. The input is fed to the first
// stage and each stage's output becomes the next stage's input.
func Sequence(stages ...chain.Runnable) chain.Runnable {
	return &sequence{stages: stages}
}

// Bind returns a Runnable with the given options applied on every
// invocation, ahead of any per-invocation options. This is how tools are
// attached to a model stage:
//
//	Bind(Model(client, model), tool.WithToolkit(tk))
func Bind(r chain.Runnable, opts ...opt.Opt) chain.Runnable {
	return &bound{Runnable: r, opts: opts}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Invoke calls the function with the input value
func (fn Func) Invoke(ctx context.Context, input any, _ ...opt.Opt) (any, error) {
	return fn(ctx, input)
}

// Invoke runs the stages in order
func (s *sequence) Invoke(ctx context.Context, input any, opts ...opt.Opt) (any, error) {
	if len(s.stages) == 0 {
		return nil, chain.ErrBadParameter.With("sequence requires at least one stage")
	}

	ctx, span := tracer.Start(ctx, "sequence")
	defer span.End()

	value := input
	for i, stage := range s.stages {
		out, err := stage.Invoke(ctx, value, opts...)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		value = out
	}
	return value, nil
}

// Invoke calls the wrapped Runnable with the bound options first
func (b *bound) Invoke(ctx context.Context, input any, opts ...opt.Opt) (any, error) {
	merged := make([]opt.Opt, 0, len(b.opts)+len(opts))
	merged = append(merged, b.opts...)
	merged = append(merged, opts...)
	return b.Runnable.Invoke(ctx, input, merged...)
}
