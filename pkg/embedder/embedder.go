/*
embedder provides adapters for generating text embeddings outside of a
hosted provider.
*/
package embedder

import (
	"context"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Func adapts a plain embedding function to the Embedder interface
type Func func(ctx context.Context, texts []string) ([][]float32, error)

var _ chain.Embedder = (Func)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Embed generates one embedding vector per input text
func (f Func) Embed(ctx context.Context, texts []string, _ ...opt.Opt) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, chain.ErrBadParameter.With("missing texts")
	}
	return f(ctx, texts)
}
