package runnable

import (
	"context"
	"fmt"
	"sync"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// parallel invokes independent stages against the same input and collects
// the results into a mapping keyed by stage name
type parallel struct {
	stages map[string]chain.Runnable
}

var _ chain.Runnable = (*parallel)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Parallel composes independent stages which all receive the same input.
// The output is a map with exactly the same keys as the stage map, where
// each value is the result of invoking the corresponding stage. Stages run
// concurrently; if any stage fails, the shared context is cancelled and
// the first error is returned.
func Parallel(stages map[string]chain.Runnable) chain.Runnable {
	return &parallel{stages: stages}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Invoke runs every stage with the input value
func (p *parallel) Invoke(ctx context.Context, input any, opts ...opt.Opt) (any, error) {
	if len(p.stages) == 0 {
		return nil, chain.ErrBadParameter.With("parallel requires at least one stage")
	}

	ctx, span := tracer.Start(ctx, "parallel")
	defer span.End()

	var mu sync.Mutex
	result := make(map[string]any, len(p.stages))

	wg, ctx := errgroup.WithContext(ctx)
	for key, stage := range p.stages {
		wg.Go(func() error {
			ctx, span := tracer.Start(ctx, "stage", trace.WithAttributes(attribute.String("key", key)))
			defer span.End()

			out, err := stage.Invoke(ctx, input, opts...)
			if err != nil {
				span.RecordError(err)
				return fmt.Errorf("stage %q: %w", key, err)
			}

			mu.Lock()
			result[key] = out
			mu.Unlock()
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
