/*
chain is a library for composing LLM pipelines in Go: prompt templates,
schema-validated tools, multimodal messages, provider clients, embedders
and vector stores, all glued together with a single Runnable abstraction.
*/
package chain

import (
	"context"

	// Packages
	opt "github.com/mutablelogic/go-chain/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Runnable is a single stage in a pipeline. Anything which can be invoked
// with an input value and produce an output value is a Runnable: a prompt
// template, a model client, a retriever, or a plain function. Stages are
// composed with the pkg/runnable package (Sequence, Parallel, Assign).
type Runnable interface {
	// Invoke the stage with an input value and return the output value
	Invoke(ctx context.Context, input any, opts ...opt.Opt) (any, error)
}
