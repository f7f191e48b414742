package vectorstore

import (
	"context"
	"sort"
	"sync"

	// Packages
	uuid "github.com/google/uuid"
	chain "github.com/mutablelogic/go-chain"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Memory is an in-process store for tests and lightweight deployments
type Memory struct {
	mu       sync.RWMutex
	embedder chain.Embedder
	records  []memoryRecord
}

type memoryRecord struct {
	document  schema.Document
	embedding []float32
}

var _ Store = (*Memory)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMemory creates an empty in-process store
func NewMemory(embedder chain.Embedder) (*Memory, error) {
	if embedder == nil {
		return nil, chain.ErrBadParameter.With("missing embedder")
	}
	return &Memory{embedder: embedder}, nil
}

// FromDocuments creates an in-process store populated with documents
func FromDocuments(ctx context.Context, embedder chain.Embedder, docs ...schema.Document) (*Memory, error) {
	store, err := NewMemory(embedder)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		if err := store.Add(ctx, docs...); err != nil {
			return nil, err
		}
	}
	return store, nil
}

///////////////////////////////////////////////////////////////////////////////
// STORE INTERFACE IMPLEMENTATION

// Add embeds and stores documents, assigning identifiers where missing
func (s *Memory) Add(ctx context.Context, docs ...schema.Document) error {
	if len(docs) == 0 {
		return chain.ErrBadParameter.With("missing documents")
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(docs) {
		return chain.ErrInternalServerError.Withf("expected %d embeddings, got %d", len(docs), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		s.records = append(s.records, memoryRecord{
			document:  doc,
			embedding: embeddings[i],
		})
	}
	return nil
}

// Search returns up to limit documents ranked by cosine similarity
func (s *Memory) Search(ctx context.Context, query string, limit int) ([]schema.Document, error) {
	if limit < 1 {
		return nil, chain.ErrBadParameter.With("limit must be at least 1")
	}

	embeddings, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) != 1 {
		return nil, chain.ErrInternalServerError.With("unexpected embedding response")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]schema.Document, 0, len(s.records))
	for _, record := range s.records {
		doc := record.document
		doc.Score = cosine(embeddings[0], record.embedding)
		result = append(result, doc)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Len returns the number of stored documents
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
