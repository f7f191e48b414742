package chain

import (
	"context"

	// Packages
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is the interface that wraps basic provider client methods
type Client interface {
	// Return the provider name
	Name() string

	// ListModels returns the list of available models
	ListModels(ctx context.Context, opts ...opt.Opt) ([]schema.Model, error)

	// GetModel returns the model with the given name
	GetModel(ctx context.Context, name string, opts ...opt.Opt) (*schema.Model, error)
}

// Generator is an interface for sending messages and conducting conversations
type Generator interface {
	// WithoutSession sends a single message and returns the response (stateless)
	WithoutSession(ctx context.Context, model schema.Model, message *schema.Message, opts ...opt.Opt) (*schema.Message, error)

	// WithSession sends a message within a conversation and returns the
	// response (stateful); the message and response are appended to the
	// conversation
	WithSession(ctx context.Context, model schema.Model, session *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, error)
}

// Embedder is an interface for generating text embeddings
type Embedder interface {
	// Embed generates one embedding vector per input text
	Embed(ctx context.Context, texts []string, opts ...opt.Opt) ([][]float32, error)
}
