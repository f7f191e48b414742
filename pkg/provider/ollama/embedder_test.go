package ollama_test

import (
	"context"
	"os"
	"testing"

	// Packages
	ollama "github.com/mutablelogic/go-chain/pkg/provider/ollama"
	assert "github.com/stretchr/testify/assert"
)

func Test_embedder_001(t *testing.T) {
	assert := assert.New(t)

	embedder, err := ollama.NewEmbedder("", "")
	assert.NoError(err)
	assert.NotNil(embedder)
}

func Test_embedder_002(t *testing.T) {
	assert := assert.New(t)

	_, err := ollama.NewEmbedder("://not-a-url", "")
	assert.Error(err)
}

func Test_embedder_003(t *testing.T) {
	host := os.Getenv("OLLAMA_URL")
	if host == "" {
		t.Skip("OLLAMA_URL not set")
	}
	assert := assert.New(t)

	embedder, err := ollama.NewEmbedder(host, "")
	if !assert.NoError(err) {
		t.FailNow()
	}

	embeddings, err := embedder.Embed(context.TODO(), []string{"the cat sat on the mat", "dogs chase cats"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Len(embeddings, 2)
	assert.NotEmpty(embeddings[0])
}
