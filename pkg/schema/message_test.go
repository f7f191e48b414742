package schema_test

import (
	"bytes"
	"encoding/json"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewMessage(t *testing.T) {
	assert := assert.New(t)

	// Basic message creation
	msg, err := schema.NewMessage(schema.RoleUser, "Hello, world!")
	assert.NoError(err)
	assert.Equal(schema.RoleUser, msg.Role)
	assert.Len(msg.Content, 1)
	assert.NotNil(msg.Content[0].Text)
	assert.Equal("Hello, world!", *msg.Content[0].Text)

	// A message needs some content
	_, err = schema.NewMessage(schema.RoleUser, "")
	assert.Error(err)
}

func TestNewMessageWithAttachment(t *testing.T) {
	assert := assert.New(t)

	// PNG magic bytes are enough for MIME detection
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	msg, err := schema.NewMessage(schema.RoleUser, "describe this image",
		schema.WithAttachment(bytes.NewReader(png)),
	)
	assert.NoError(err)
	assert.Len(msg.Content, 2)

	attachments := msg.Attachments()
	assert.Len(attachments, 1)
	assert.Equal("image/png", attachments[0].Type)
	assert.Equal(png, attachments[0].Data)
}

func TestNewMessageWithAttachmentURL(t *testing.T) {
	assert := assert.New(t)

	msg, err := schema.NewMessage(schema.RoleUser, "what is in this image?",
		schema.WithAttachmentURL("https://example.com/cat.jpg", "image/jpeg"),
	)
	assert.NoError(err)

	attachments := msg.Attachments()
	assert.Len(attachments, 1)
	assert.Equal("image/jpeg", attachments[0].Type)
	assert.NotNil(attachments[0].URL)
	assert.Equal("https://example.com/cat.jpg", attachments[0].URL.String())

	// Invalid URL is an error
	_, err = schema.NewMessage(schema.RoleUser, "hello",
		schema.WithAttachmentURL("://bad", "image/jpeg"),
	)
	assert.Error(err)
}

func TestMessageText(t *testing.T) {
	assert := assert.New(t)

	// Multiple text blocks are joined with newlines
	msg := schema.Message{
		Role: schema.RoleAssistant,
		Content: []schema.ContentBlock{
			{Text: ptr("First")},
			{Text: ptr("Second")},
		},
	}
	assert.Equal("First\nSecond", msg.Text())

	// Non-text blocks are skipped
	msg2 := schema.Message{
		Role: schema.RoleAssistant,
		Content: []schema.ContentBlock{
			{Text: ptr("Hello")},
			{ToolCall: &schema.ToolCall{Name: "get_weather"}},
			{Text: ptr("World")},
		},
	}
	assert.Equal("Hello\nWorld", msg2.Text())
}

func TestMessageToolCalls(t *testing.T) {
	assert := assert.New(t)

	msg := schema.Message{
		Role: schema.RoleAssistant,
		Content: []schema.ContentBlock{
			{Text: ptr("Let me check the weather")},
			{ToolCall: &schema.ToolCall{
				ID:    "call_001",
				Name:  "get_weather",
				Input: json.RawMessage(`{"location":"Berlin"}`),
			}},
		},
		Result: schema.ResultToolCall,
	}

	calls := msg.ToolCalls()
	assert.Len(calls, 1)
	assert.Equal("call_001", calls[0].ID)
	assert.Equal("get_weather", calls[0].Name)
	assert.JSONEq(`{"location":"Berlin"}`, string(calls[0].Input))
}

func TestNewToolResult(t *testing.T) {
	assert := assert.New(t)

	block := schema.NewToolResult("call_001", "get_weather", map[string]any{"temp": 21})
	assert.NotNil(block.ToolResult)
	assert.Equal("call_001", block.ToolResult.ID)
	assert.Equal("get_weather", block.ToolResult.Name)
	assert.False(block.ToolResult.IsError)
	assert.JSONEq(`{"temp":21}`, string(block.ToolResult.Content))
}

func TestNewToolError(t *testing.T) {
	anError := assert.AnError
	assert := assert.New(t)

	block := schema.NewToolError("call_001", "get_weather", anError)
	assert.NotNil(block.ToolResult)
	assert.True(block.ToolResult.IsError)

	var text string
	assert.NoError(json.Unmarshal(block.ToolResult.Content, &text))
	assert.Equal(anError.Error(), text)
}

func TestMessageMarshalJSON(t *testing.T) {
	assert := assert.New(t)

	msg, err := schema.NewMessage(schema.RoleUser, "Hello")
	assert.NoError(err)
	data, err := json.Marshal(msg)
	assert.NoError(err)

	expected := `{
		"role": "user",
		"content": [
			{
				"text": "Hello"
			}
		]
	}`
	assert.JSONEq(expected, string(data))
}
