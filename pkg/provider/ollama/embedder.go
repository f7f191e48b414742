/*
ollama implements a local embedding client backed by an Ollama server
(https://github.com/ollama/ollama)
*/
package ollama

import (
	"context"
	"net/http"
	"net/url"
	"time"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	ollama "github.com/ollama/ollama/api"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Embedder struct {
	client *ollama.Client
	model  string
}

var _ chain.Embedder = (*Embedder)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultHost  = "http://localhost:11434"
	defaultModel = "nomic-embed-text"
	timeout      = 60 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewEmbedder creates an embedding client for an Ollama server. An empty
// host uses the default local server, an empty model uses a commonly
// available local embedding model.
func NewEmbedder(host, model string) (*Embedder, error) {
	if host == "" {
		host = defaultHost
	}
	if model == "" {
		model = defaultModel
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, chain.ErrBadParameter.Withf("invalid host %q: %v", host, err)
	}

	return &Embedder{
		client: ollama.NewClient(u, &http.Client{Timeout: timeout}),
		model:  model,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// EMBEDDER INTERFACE IMPLEMENTATION

// Embed generates one embedding vector per input text
func (e *Embedder) Embed(ctx context.Context, texts []string, _ ...opt.Opt) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, chain.ErrBadParameter.With("missing texts")
	}

	response, err := e.client.Embed(ctx, &ollama.EmbedRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, err
	}
	if response == nil || len(response.Embeddings) != len(texts) {
		return nil, chain.ErrInternalServerError.With("unexpected embedding response")
	}
	return response.Embeddings, nil
}
