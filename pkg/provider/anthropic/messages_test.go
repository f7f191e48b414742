package anthropic_test

import (
	"context"
	"encoding/json"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	anthropic "github.com/mutablelogic/go-chain/pkg/provider/anthropic"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	tool "github.com/mutablelogic/go-chain/pkg/tool"
	assert "github.com/stretchr/testify/assert"
)

func Test_request_001(t *testing.T) {
	assert := assert.New(t)

	message, err := schema.NewMessage(schema.RoleUser, "why is the sky blue?")
	if !assert.NoError(err) {
		t.FailNow()
	}

	request, err := anthropic.MessagesRequest("claude-sonnet-4-5", []*schema.Message{message},
		opt.WithSystemPrompt("answer in one sentence"),
		opt.WithTemperature(0.5),
		opt.WithMaxTokens(512),
		opt.WithStopSequences("END"),
		opt.WithUser("user-123"),
	)
	if !assert.NoError(err) {
		t.FailNow()
	}

	data, err := json.Marshal(request)
	assert.NoError(err)
	assert.JSONEq(`{
		"model": "claude-sonnet-4-5",
		"max_tokens": 512,
		"system": "answer in one sentence",
		"temperature": 0.5,
		"stop_sequences": ["END"],
		"metadata": {"user_id": "user-123"},
		"messages": [
			{"role": "user", "content": [{"type": "text", "text": "why is the sky blue?"}]}
		]
	}`, string(data))
}

func Test_request_002(t *testing.T) {
	assert := assert.New(t)

	// No model or no messages is an error
	message, err := schema.NewMessage(schema.RoleUser, "hello")
	if !assert.NoError(err) {
		t.FailNow()
	}
	_, err = anthropic.MessagesRequest("", []*schema.Message{message})
	assert.ErrorIs(err, chain.ErrBadParameter)

	_, err = anthropic.MessagesRequest("claude-sonnet-4-5", nil)
	assert.ErrorIs(err, chain.ErrBadParameter)
}

func Test_request_003(t *testing.T) {
	assert := assert.New(t)

	// Base64 image attachment
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
	message := &schema.Message{
		Role: schema.RoleUser,
		Content: []schema.ContentBlock{
			{Text: ptr("what is this image?")},
			{Attachment: &schema.Attachment{Type: "image/png", Data: png}},
		},
	}

	request, err := anthropic.MessagesRequest("claude-sonnet-4-5", []*schema.Message{message})
	if !assert.NoError(err) {
		t.FailNow()
	}

	data, err := json.Marshal(request)
	assert.NoError(err)
	assert.Contains(string(data), `"type":"image"`)
	assert.Contains(string(data), `"type":"base64"`)
	assert.Contains(string(data), `"media_type":"image/png"`)
}

func Test_request_004(t *testing.T) {
	assert := assert.New(t)

	// URL image attachment
	message, err := schema.NewMessage(schema.RoleUser, "describe this",
		schema.WithAttachmentURL("https://example.com/cat.jpg", "image/jpeg"),
	)
	if !assert.NoError(err) {
		t.FailNow()
	}

	request, err := anthropic.MessagesRequest("claude-sonnet-4-5", []*schema.Message{message})
	if !assert.NoError(err) {
		t.FailNow()
	}

	data, err := json.Marshal(request)
	assert.NoError(err)
	assert.Contains(string(data), `"type":"url"`)
	assert.Contains(string(data), `"url":"https://example.com/cat.jpg"`)
}

func Test_request_005(t *testing.T) {
	assert := assert.New(t)

	// Unsupported attachment type
	message := &schema.Message{
		Role: schema.RoleUser,
		Content: []schema.ContentBlock{
			{Attachment: &schema.Attachment{Type: "audio/mpeg", Data: []byte{0x01}}},
		},
	}
	_, err := anthropic.MessagesRequest("claude-sonnet-4-5", []*schema.Message{message})
	assert.ErrorIs(err, chain.ErrBadParameter)
}

func Test_request_006(t *testing.T) {
	assert := assert.New(t)

	// Tools from a bound toolkit
	weather, err := tool.NewFunc("get_weather", "Get the current weather", &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"location": {Type: "string", Description: "City name"},
			"unit":     {Type: "string", Enum: []any{"celsius", "fahrenheit"}},
		},
		Required: []string{"location"},
	}, func(ctx context.Context, input json.RawMessage) (any, error) {
		return nil, nil
	})
	if !assert.NoError(err) {
		t.FailNow()
	}

	tk, err := tool.NewToolkit(weather)
	if !assert.NoError(err) {
		t.FailNow()
	}

	message, err := schema.NewMessage(schema.RoleUser, "what's the weather in Berlin?")
	if !assert.NoError(err) {
		t.FailNow()
	}

	request, err := anthropic.MessagesRequest("claude-sonnet-4-5", []*schema.Message{message},
		tool.WithToolkit(tk),
		opt.WithToolChoice("tool", "get_weather"),
	)
	if !assert.NoError(err) {
		t.FailNow()
	}

	data, err := json.Marshal(request)
	assert.NoError(err)
	assert.Contains(string(data), `"name":"get_weather"`)
	assert.Contains(string(data), `"input_schema"`)
	assert.Contains(string(data), `"tool_choice":{"type":"tool","name":"get_weather"}`)
}

func Test_request_007(t *testing.T) {
	assert := assert.New(t)

	// Tool results round-trip into tool_result blocks
	result := schema.NewToolResult("toolu_01", "get_weather", map[string]any{"temp": 11})
	message := &schema.Message{
		Role:    schema.RoleUser,
		Content: []schema.ContentBlock{result},
	}

	request, err := anthropic.MessagesRequest("claude-sonnet-4-5", []*schema.Message{message})
	if !assert.NoError(err) {
		t.FailNow()
	}

	data, err := json.Marshal(request)
	assert.NoError(err)
	assert.Contains(string(data), `"type":"tool_result"`)
	assert.Contains(string(data), `"tool_use_id":"toolu_01"`)
}

func ptr(s string) *string {
	return &s
}
