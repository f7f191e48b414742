package embedder

import (
	"context"
	"runtime"
	"strings"

	// Packages
	fastembed "github.com/anush008/fastembed-go"
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// FastEmbed generates embeddings locally using an ONNX model, with no
// network dependency after the model has been downloaded
type FastEmbed struct {
	model     *fastembed.FlagEmbedding
	batchSize int
}

// FastEmbedOptions configures the local embedding model
type FastEmbedOptions struct {
	Model     fastembed.EmbeddingModel // zero value picks the library default
	CacheDir  string                   // model download directory
	MaxLength int                      // token limit, 0 = default
	BatchSize int                      // passage batch size, capped by CPUs
}

var _ chain.Embedder = (*FastEmbed)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	passagePrefix    = "passage:"
	defaultBatchSize = 64
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFastEmbed creates a local embedder. Call Close to release the model.
func NewFastEmbed(options *FastEmbedOptions) (*FastEmbed, error) {
	var init *fastembed.InitOptions
	if options != nil {
		init = &fastembed.InitOptions{
			Model:     options.Model,
			CacheDir:  options.CacheDir,
			MaxLength: options.MaxLength,
		}
	}
	model, err := fastembed.NewFlagEmbedding(init)
	if err != nil {
		return nil, err
	}

	// Keep batches modest for desktop CPUs
	batchSize := defaultBatchSize
	if options != nil && options.BatchSize > 0 {
		batchSize = options.BatchSize
	}
	if max := 4 * runtime.GOMAXPROCS(0); batchSize > max {
		batchSize = max
	}

	return &FastEmbed{model: model, batchSize: batchSize}, nil
}

// Close releases the underlying model
func (e *FastEmbed) Close() error {
	if e.model != nil {
		e.model.Destroy()
		e.model = nil
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// EMBEDDER INTERFACE IMPLEMENTATION

// Embed generates one embedding vector per input text, treated as
// passages for asymmetric retrieval models
func (e *FastEmbed) Embed(_ context.Context, texts []string, _ ...opt.Opt) ([][]float32, error) {
	if e.model == nil {
		return nil, chain.ErrBadParameter.With("embedder is closed")
	}
	if len(texts) == 0 {
		return nil, chain.ErrBadParameter.With("missing texts")
	}

	// Asymmetric models expect a passage prefix
	inputs := make([]string, len(texts))
	for i, text := range texts {
		if strings.HasPrefix(text, passagePrefix) {
			inputs[i] = text
		} else {
			inputs[i] = passagePrefix + " " + text
		}
	}
	return e.model.PassageEmbed(inputs, e.batchSize)
}

// EmbedQuery embeds a single query string for asymmetric retrieval
func (e *FastEmbed) EmbedQuery(_ context.Context, query string) ([]float32, error) {
	if e.model == nil {
		return nil, chain.ErrBadParameter.With("embedder is closed")
	}
	return e.model.QueryEmbed(query)
}
