package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	pgxpool "github.com/jackc/pgx/v5/pgxpool"
	chain "github.com/mutablelogic/go-chain"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Postgres is a store backed by Postgres with the pgvector extension
type Postgres struct {
	pool     *pgxpool.Pool
	embedder chain.Embedder
	table    string
}

var _ Store = (*Postgres)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultTable = "documents"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewPostgres connects to Postgres. An empty table name uses the default.
func NewPostgres(ctx context.Context, connStr string, embedder chain.Embedder, table string) (*Postgres, error) {
	if embedder == nil {
		return nil, chain.ErrBadParameter.With("missing embedder")
	}
	if table == "" {
		table = defaultTable
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &Postgres{pool: pool, embedder: embedder, table: table}, nil
}

// Close releases the underlying connection pool
func (s *Postgres) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateSchema ensures the pgvector extension and document table exist.
// The dimension must match the embedder's output.
func (s *Postgres) CreateSchema(ctx context.Context, dimension int) error {
	if dimension < 1 {
		return chain.ErrBadParameter.With("dimension must be at least 1")
	}
	if _, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return err
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %q (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding vector(%d)
		)
	`, s.table, dimension)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return err
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STORE INTERFACE IMPLEMENTATION

// Add embeds and stores documents, assigning identifiers where missing
func (s *Postgres) Add(ctx context.Context, docs ...schema.Document) error {
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

	query := fmt.Sprintf(`
		INSERT INTO %q (id, content, metadata, embedding)
		VALUES ($1, $2, $3::jsonb, $4::vector)
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content, metadata = EXCLUDED.metadata, embedding = EXCLUDED.embedding
	`, s.table)
	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		metadata, err := json.Marshal(doc.Metadata)
		if err != nil {
			return err
		}
		if _, err := s.pool.Exec(ctx, query, doc.ID, doc.Content, string(metadata), vectorLiteral(embeddings[i])); err != nil {
			return err
		}
	}
	return nil
}

// Search returns up to limit documents ranked by cosine similarity
func (s *Postgres) Search(ctx context.Context, query string, limit int) ([]schema.Document, error) {
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

	// <=> is cosine distance, so similarity is its complement
	sql := fmt.Sprintf(`
		SELECT id, content, metadata, 1 - (embedding <=> $1::vector) AS score
		FROM %q
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`, s.table)
	rows, err := s.pool.Query(ctx, sql, vectorLiteral(embeddings[0]), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []schema.Document
	for rows.Next() {
		var doc schema.Document
		var metadata []byte
		if err := rows.Scan(&doc.ID, &doc.Content, &metadata, &doc.Score); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
				return nil, err
			}
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// vectorLiteral formats an embedding as a pgvector literal
func vectorLiteral(embedding []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteByte(']')
	return sb.String()
}
