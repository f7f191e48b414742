package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	ollama "github.com/mutablelogic/go-chain/pkg/provider/ollama"
	openai "github.com/mutablelogic/go-chain/pkg/provider/openai"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	vectorstore "github.com/mutablelogic/go-chain/pkg/vectorstore"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type StoreFlags struct {
	Store       string `enum:"postgres,mongo" default:"postgres" help:"Vector store backend"`
	PostgresUrl string `env:"POSTGRES_URL" help:"Postgres connection string"`
	MongoUrl    string `env:"MONGO_URL" help:"MongoDB connection string"`
	Database    string `default:"chain" help:"Database name (mongo)"`
	Collection  string `default:"documents" help:"Collection or table name"`
	Embedder    string `enum:"openai,ollama" default:"openai" help:"Embedding provider"`
}

type IndexCmd struct {
	StoreFlags
	Files     []string `arg:"" help:"Text files to index" type:"existingfile"`
	Dimension int      `default:"1536" help:"Embedding dimension for schema creation (postgres)"`
}

type QueryCmd struct {
	StoreFlags
	Query string `arg:"" help:"Query text"`
	Limit int    `default:"4" help:"Maximum number of documents to return"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *IndexCmd) Run(globals *Globals) error {
	store, closer, err := cmd.store(globals)
	if err != nil {
		return err
	}
	defer closer()

	// Postgres needs the schema in place before inserting
	if postgres, ok := store.(*vectorstore.Postgres); ok {
		if err := postgres.CreateSchema(globals.ctx, cmd.Dimension); err != nil {
			return err
		}
	}

	docs := make([]schema.Document, 0, len(cmd.Files))
	for _, path := range cmd.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, schema.Document{
			ID:      filepath.Base(path),
			Content: string(data),
			Metadata: map[string]any{
				"path": path,
			},
		})
	}
	if err := store.Add(globals.ctx, docs...); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "indexed %d documents\n", len(docs))
	return nil
}

func (cmd *QueryCmd) Run(globals *Globals) error {
	store, closer, err := cmd.store(globals)
	if err != nil {
		return err
	}
	defer closer()

	docs, err := store.Search(globals.ctx, cmd.Query, cmd.Limit)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&sb, "## %s (%.3f)\n\n%s\n\n", doc.ID, doc.Score, doc.Content)
	}
	return render(os.Stdout, sb.String())
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// embedder returns the configured embedding client
func (f *StoreFlags) embedder(globals *Globals) (chain.Embedder, error) {
	switch f.Embedder {
	case "openai":
		if globals.OpenAIKey == "" {
			return nil, chain.ErrBadParameter.With("OPENAI_API_KEY not set")
		}
		c, err := openai.New(globals.OpenAIKey)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "ollama":
		e, err := ollama.NewEmbedder(globals.OllamaEndpoint, "")
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, chain.ErrBadParameter.Withf("unknown embedder %q", f.Embedder)
}

// store returns the configured vector store and a close function
func (f *StoreFlags) store(globals *Globals) (vectorstore.Store, func(), error) {
	embedder, err := f.embedder(globals)
	if err != nil {
		return nil, nil, err
	}

	switch f.Store {
	case "postgres":
		if f.PostgresUrl == "" {
			return nil, nil, chain.ErrBadParameter.With("POSTGRES_URL not set")
		}
		store, err := vectorstore.NewPostgres(globals.ctx, f.PostgresUrl, embedder, f.Collection)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "mongo":
		if f.MongoUrl == "" {
			return nil, nil, chain.ErrBadParameter.With("MONGO_URL not set")
		}
		store, err := vectorstore.NewMongo(globals.ctx, f.MongoUrl, f.Database, f.Collection, embedder)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	return nil, nil, chain.ErrBadParameter.Withf("unknown store %q", f.Store)
}
