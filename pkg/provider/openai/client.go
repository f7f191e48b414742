/*
openai implements an API client for the OpenAI chat completions and
embeddings APIs (https://platform.openai.com/docs/api-reference)
*/
package openai

import (
	"context"
	"time"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	openai "github.com/sashabaranov/go-openai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	api        *openai.Client
	embedModel string
}

// Opt is a client configuration option
type Opt func(*settings) error

type settings struct {
	config     openai.ClientConfig
	embedModel string
}

var _ chain.Client = (*Client)(nil)
var _ chain.Generator = (*Client)(nil)
var _ chain.Embedder = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultName           = "openai"
	defaultEmbeddingModel = "text-embedding-3-small"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client
func New(apiKey string, opts ...Opt) (*Client, error) {
	if apiKey == "" {
		return nil, chain.ErrBadParameter.With("missing API key")
	}

	s := settings{
		config:     openai.DefaultConfig(apiKey),
		embedModel: defaultEmbeddingModel,
	}
	for _, o := range opts {
		if err := o(&s); err != nil {
			return nil, err
		}
	}

	// Return the client
	return &Client{
		api:        openai.NewClientWithConfig(s.config),
		embedModel: s.embedModel,
	}, nil
}

// WithBaseURL sets an alternate API endpoint (proxies, compatible servers)
func WithBaseURL(u string) Opt {
	return func(s *settings) error {
		if u == "" {
			return chain.ErrBadParameter.With("missing base URL")
		}
		s.config.BaseURL = u
		return nil
	}
}

// WithEmbeddingModel sets the model used for embedding requests
func WithEmbeddingModel(model string) Opt {
	return func(s *settings) error {
		if model == "" {
			return chain.ErrBadParameter.With("missing embedding model")
		}
		s.embedModel = model
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Return the name of the provider
func (*Client) Name() string {
	return defaultName
}

// ListModels returns all available models
func (c *Client) ListModels(ctx context.Context, _ ...opt.Opt) ([]schema.Model, error) {
	response, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]schema.Model, 0, len(response.Models))
	for _, model := range response.Models {
		result = append(result, schema.Model{
			Name:    model.ID,
			Created: time.Unix(model.CreatedAt, 0),
			OwnedBy: c.Name(),
			Meta: map[string]any{
				"owned_by": model.OwnedBy,
			},
		})
	}
	return result, nil
}

// GetModel returns a model by name
func (c *Client) GetModel(ctx context.Context, name string, _ ...opt.Opt) (*schema.Model, error) {
	model, err := c.api.GetModel(ctx, name)
	if err != nil {
		return nil, err
	}
	return &schema.Model{
		Name:    model.ID,
		Created: time.Unix(model.CreatedAt, 0),
		OwnedBy: c.Name(),
		Meta: map[string]any{
			"owned_by": model.OwnedBy,
		},
	}, nil
}
