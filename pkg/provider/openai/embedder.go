package openai

import (
	"context"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	openai "github.com/sashabaranov/go-openai"
)

///////////////////////////////////////////////////////////////////////////////
// EMBEDDER INTERFACE IMPLEMENTATION

// Embed generates one embedding vector per input text
func (c *Client) Embed(ctx context.Context, texts []string, _ ...opt.Opt) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, chain.ErrBadParameter.With("missing texts")
	}

	response, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: texts,
	})
	if err != nil {
		return nil, err
	}
	if len(response.Data) != len(texts) {
		return nil, chain.ErrInternalServerError.Withf("expected %d embeddings, got %d", len(texts), len(response.Data))
	}

	// Data can arrive out of order; use the index field
	result := make([][]float32, len(texts))
	for _, data := range response.Data {
		if data.Index < 0 || data.Index >= len(result) {
			return nil, chain.ErrInternalServerError.Withf("unexpected embedding index %d", data.Index)
		}
		result[data.Index] = data.Embedding
	}
	return result, nil
}
