package vectorstore

import (
	"context"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// retriever adapts a store to a pipeline stage
type retriever struct {
	store Store
	limit int
}

var _ chain.Runnable = (*retriever)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const defaultLimit = 4

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Retriever returns a pipeline stage which searches the store with the
// input string and outputs the matching documents. A limit below 1 uses
// the default.
func Retriever(store Store, limit int) chain.Runnable {
	if limit < 1 {
		limit = defaultLimit
	}
	return &retriever{store: store, limit: limit}
}

///////////////////////////////////////////////////////////////////////////////
// RUNNABLE INTERFACE IMPLEMENTATION

func (r *retriever) Invoke(ctx context.Context, input any, _ ...opt.Opt) (any, error) {
	query, ok := input.(string)
	if !ok {
		return nil, chain.ErrBadParameter.Withf("retriever requires a string input, got %T", input)
	}
	return r.store.Search(ctx, query, r.limit)
}
