/*
vectorstore provides document stores with embedding-based similarity
search, and a retriever for using them in a pipeline.
*/
package vectorstore

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Store is the interface for a document store with similarity search
type Store interface {
	// Add embeds and stores documents
	Add(ctx context.Context, docs ...schema.Document) error

	// Search returns up to limit documents most similar to the query,
	// ordered by descending score
	Search(ctx context.Context, query string, limit int) ([]schema.Document, error)
}
