package replay_test

import (
	"context"
	"encoding/json"
	"testing"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	replay "github.com/mutablelogic/go-chain/pkg/provider/replay"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_replay_001(t *testing.T) {
	assert := assert.New(t)

	client, err := replay.New(
		replay.Response{Text: "first"},
		replay.Response{Text: "second"},
	)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("replay", client.Name())

	message, err := schema.NewMessage(schema.RoleUser, "hello")
	if !assert.NoError(err) {
		t.FailNow()
	}

	// Responses come back in order
	response, err := client.WithoutSession(context.TODO(), client.Model(), message)
	assert.NoError(err)
	assert.Equal("first", response.Text())

	response, err = client.WithoutSession(context.TODO(), client.Model(), message)
	assert.NoError(err)
	assert.Equal("second", response.Text())

	// Exhausted
	_, err = client.WithoutSession(context.TODO(), client.Model(), message)
	assert.ErrorIs(err, chain.ErrNotFound)
}

func Test_replay_002(t *testing.T) {
	assert := assert.New(t)

	client, err := replay.New(replay.Response{
		ToolCalls: []schema.ToolCall{
			{Name: "get_weather", Input: json.RawMessage(`{"location":"Berlin"}`)},
		},
	})
	if !assert.NoError(err) {
		t.FailNow()
	}

	message, err := schema.NewMessage(schema.RoleUser, "what's the weather in Berlin?")
	if !assert.NoError(err) {
		t.FailNow()
	}

	response, err := client.WithoutSession(context.TODO(), client.Model(), message)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(schema.ResultToolCall, response.Result)

	calls := response.ToolCalls()
	if !assert.Len(calls, 1) {
		t.FailNow()
	}
	assert.Equal("get_weather", calls[0].Name)
	assert.NotEmpty(calls[0].ID)
}

func Test_replay_003(t *testing.T) {
	assert := assert.New(t)

	client, err := replay.New(replay.Response{Text: "pong"})
	if !assert.NoError(err) {
		t.FailNow()
	}

	message, err := schema.NewMessage(schema.RoleUser, "ping")
	if !assert.NoError(err) {
		t.FailNow()
	}

	// Session accumulates both sides of the exchange
	var session schema.Conversation
	response, err := client.WithSession(context.TODO(), client.Model(), &session, message)
	assert.NoError(err)
	assert.Equal("pong", response.Text())
	assert.Len(session, 2)
	assert.Equal(schema.RoleUser, session[0].Role)
	assert.Equal(schema.RoleAssistant, session[1].Role)
}

func Test_replay_004(t *testing.T) {
	assert := assert.New(t)

	// No responses is an error
	_, err := replay.New()
	assert.Error(err)

	// Wrong model is an error
	client, err := replay.New(replay.Response{Text: "x"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	message, err := schema.NewMessage(schema.RoleUser, "hello")
	if !assert.NoError(err) {
		t.FailNow()
	}
	_, err = client.WithoutSession(context.TODO(), schema.Model{Name: "gpt-4o", OwnedBy: "openai"}, message)
	assert.ErrorIs(err, chain.ErrBadParameter)
}
