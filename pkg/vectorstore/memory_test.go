package vectorstore_test

import (
	"context"
	"strings"
	"testing"

	// Packages
	embedder "github.com/mutablelogic/go-chain/pkg/embedder"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	vectorstore "github.com/mutablelogic/go-chain/pkg/vectorstore"
	assert "github.com/stretchr/testify/assert"
)

// wordEmbedder embeds texts by counting occurrences of known words, so
// similarity rankings are predictable
var wordEmbedder = embedder.Func(func(_ context.Context, texts []string) ([][]float32, error) {
	words := []string{"cat", "dog", "fish", "bird"}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(words))
		for j, word := range words {
			vec[j] = float32(strings.Count(strings.ToLower(text), word))
		}
		result[i] = vec
	}
	return result, nil
})

func Test_memory_001(t *testing.T) {
	assert := assert.New(t)

	store, err := vectorstore.FromDocuments(context.TODO(), wordEmbedder,
		schema.NewDocument("the cat sat on the mat"),
		schema.NewDocument("dogs chase the postman"),
		schema.NewDocument("fish swim in the sea"),
	)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(3, store.Len())

	docs, err := store.Search(context.TODO(), "my cat is hungry", 2)
	if !assert.NoError(err) {
		t.FailNow()
	}
	if !assert.Len(docs, 2) {
		t.FailNow()
	}
	assert.Equal("the cat sat on the mat", docs[0].Content)
	assert.Greater(docs[0].Score, docs[1].Score)
	assert.NotEmpty(docs[0].ID)
}

func Test_memory_002(t *testing.T) {
	assert := assert.New(t)

	store, err := vectorstore.NewMemory(wordEmbedder)
	if !assert.NoError(err) {
		t.FailNow()
	}

	// No documents is an error
	assert.Error(store.Add(context.TODO()))

	// Bad limit is an error
	_, err = store.Search(context.TODO(), "cat", 0)
	assert.Error(err)

	// Missing embedder is an error
	_, err = vectorstore.NewMemory(nil)
	assert.Error(err)
}

func Test_memory_003(t *testing.T) {
	assert := assert.New(t)

	// Limit greater than the number of documents returns everything
	store, err := vectorstore.FromDocuments(context.TODO(), wordEmbedder,
		schema.NewDocument("a dog"),
		schema.NewDocument("a bird"),
	)
	if !assert.NoError(err) {
		t.FailNow()
	}

	docs, err := store.Search(context.TODO(), "dog", 10)
	assert.NoError(err)
	assert.Len(docs, 2)
	assert.Equal("a dog", docs[0].Content)
}

func Test_retriever_001(t *testing.T) {
	assert := assert.New(t)

	store, err := vectorstore.FromDocuments(context.TODO(), wordEmbedder,
		schema.NewDocument("the cat sat on the mat"),
		schema.NewDocument("dogs chase the postman"),
	)
	if !assert.NoError(err) {
		t.FailNow()
	}

	retriever := vectorstore.Retriever(store, 1)
	out, err := retriever.Invoke(context.TODO(), "cat")
	if !assert.NoError(err) {
		t.FailNow()
	}
	docs, ok := out.([]schema.Document)
	if !assert.True(ok) {
		t.FailNow()
	}
	assert.Len(docs, 1)
	assert.Equal("the cat sat on the mat", docs[0].Content)

	// Non-string input is an error
	_, err = retriever.Invoke(context.TODO(), 42)
	assert.Error(err)
}
