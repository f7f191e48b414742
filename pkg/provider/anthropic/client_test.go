package anthropic_test

import (
	"testing"

	// Packages
	anthropic "github.com/mutablelogic/go-chain/pkg/provider/anthropic"
	assert "github.com/stretchr/testify/assert"
)

func Test_client_001(t *testing.T) {
	assert := assert.New(t)

	client, err := anthropic.New("sk-test")
	if assert.NoError(err) {
		assert.NotNil(client)
		assert.Equal("anthropic", client.Name())
	}
}

func Test_client_002(t *testing.T) {
	assert := assert.New(t)

	_, err := anthropic.New("")
	assert.Error(err)
}
