package embedder_test

import (
	"context"
	"testing"

	// Packages
	embedder "github.com/mutablelogic/go-chain/pkg/embedder"
	assert "github.com/stretchr/testify/assert"
)

func Test_func_001(t *testing.T) {
	assert := assert.New(t)

	fn := embedder.Func(func(_ context.Context, texts []string) ([][]float32, error) {
		result := make([][]float32, len(texts))
		for i, text := range texts {
			result[i] = []float32{float32(len(text)), 1}
		}
		return result, nil
	})

	embeddings, err := fn.Embed(context.TODO(), []string{"a", "bb"})
	assert.NoError(err)
	assert.Equal([][]float32{{1, 1}, {2, 1}}, embeddings)
}

func Test_func_002(t *testing.T) {
	assert := assert.New(t)

	fn := embedder.Func(func(_ context.Context, texts []string) ([][]float32, error) {
		return nil, nil
	})
	_, err := fn.Embed(context.TODO(), nil)
	assert.Error(err)
}
