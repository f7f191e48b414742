package vectorstore

import (
	"context"
	"sort"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	chain "github.com/mutablelogic/go-chain"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	bson "go.mongodb.org/mongo-driver/bson"
	mongo "go.mongodb.org/mongo-driver/mongo"
	options "go.mongodb.org/mongo-driver/mongo/options"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Mongo is a store backed by a MongoDB collection. Similarity is ranked
// client-side, which suits small to medium collections.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	embedder   chain.Embedder
}

type mongoDocument struct {
	ID        string         `bson:"_id"`
	Content   string         `bson:"content"`
	Metadata  map[string]any `bson:"metadata,omitempty"`
	Embedding []float32      `bson:"embedding"`
}

var _ Store = (*Mongo)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const mongoCloseTimeout = 5 * time.Second

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMongo connects to MongoDB and uses the named database and collection
func NewMongo(ctx context.Context, uri, database, collection string, embedder chain.Embedder) (*Mongo, error) {
	if uri == "" {
		return nil, chain.ErrBadParameter.With("missing URI")
	}
	if database == "" || collection == "" {
		return nil, chain.ErrBadParameter.With("missing database or collection name")
	}
	if embedder == nil {
		return nil, chain.ErrBadParameter.With("missing embedder")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection(collection),
		embedder:   embedder,
	}, nil
}

// Close disconnects from MongoDB
func (s *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoCloseTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

///////////////////////////////////////////////////////////////////////////////
// STORE INTERFACE IMPLEMENTATION

// Add embeds and stores documents, assigning identifiers where missing
func (s *Mongo) Add(ctx context.Context, docs ...schema.Document) error {
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

	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		record := mongoDocument{
			ID:        doc.ID,
			Content:   doc.Content,
			Metadata:  doc.Metadata,
			Embedding: embeddings[i],
		}
		opts := options.Replace().SetUpsert(true)
		if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, record, opts); err != nil {
			return err
		}
	}
	return nil
}

// Search returns up to limit documents ranked by cosine similarity
func (s *Mongo) Search(ctx context.Context, query string, limit int) ([]schema.Document, error) {
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

	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []schema.Document
	for cursor.Next(ctx) {
		var record mongoDocument
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		result = append(result, schema.Document{
			ID:       record.ID,
			Content:  record.Content,
			Metadata: record.Metadata,
			Score:    cosine(embeddings[0], record.Embedding),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
