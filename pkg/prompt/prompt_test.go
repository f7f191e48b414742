package prompt_test

import (
	"context"
	"strings"
	"testing"

	// Packages
	prompt "github.com/mutablelogic/go-chain/pkg/prompt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_template_001(t *testing.T) {
	assert := assert.New(t)

	tmpl, err := prompt.New("tell me a joke about {{ .topic }}")
	if !assert.NoError(err) {
		t.FailNow()
	}

	text, err := tmpl.Render(map[string]any{"topic": "bears"})
	assert.NoError(err)
	assert.Equal("tell me a joke about bears", text)
}

func Test_template_002(t *testing.T) {
	assert := assert.New(t)

	// Missing values are an error, not an empty substitution
	tmpl, err := prompt.New("hello {{ .name }}")
	if !assert.NoError(err) {
		t.FailNow()
	}

	_, err = tmpl.Render(map[string]any{})
	assert.Error(err)
}

func Test_template_003(t *testing.T) {
	assert := assert.New(t)

	// Malformed template syntax
	_, err := prompt.New("hello {{ .name")
	assert.Error(err)
}

func Test_template_004(t *testing.T) {
	assert := assert.New(t)

	tmpl, err := prompt.New("count: {{ .count }}")
	if !assert.NoError(err) {
		t.FailNow()
	}

	// Invoke with a map input
	out, err := tmpl.Invoke(context.TODO(), map[string]any{"count": 42})
	assert.NoError(err)
	assert.Equal("count: 42", out)

	// Invoke with a non-map input
	_, err = tmpl.Invoke(context.TODO(), "not a map")
	assert.Error(err)
}

func Test_chat_001(t *testing.T) {
	assert := assert.New(t)

	chat, err := prompt.FromMessages(
		prompt.ChatMessage{Role: schema.RoleSystem, Content: "You are a {{ .persona }}."},
		prompt.ChatMessage{Role: schema.RoleUser, Content: "{{ .question }}"},
	)
	if !assert.NoError(err) {
		t.FailNow()
	}

	conversation, err := chat.Format(map[string]any{
		"persona":  "pirate",
		"question": "where is the treasure?",
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	if !assert.Len(conversation, 2) {
		t.FailNow()
	}
	assert.Equal(schema.RoleSystem, conversation[0].Role)
	assert.Equal("You are a pirate.", conversation[0].Text())
	assert.Equal(schema.RoleUser, conversation[1].Role)
	assert.Equal("where is the treasure?", conversation[1].Text())
}

func Test_chat_002(t *testing.T) {
	assert := assert.New(t)

	// Invalid role
	_, err := prompt.FromMessages(
		prompt.ChatMessage{Role: "robot", Content: "beep"},
	)
	assert.Error(err)

	// No messages
	_, err = prompt.FromMessages()
	assert.Error(err)
}

func Test_chat_003(t *testing.T) {
	assert := assert.New(t)

	chat, err := prompt.FromMessages(
		prompt.ChatMessage{Role: schema.RoleUser, Content: "{{ .question }}"},
	)
	if !assert.NoError(err) {
		t.FailNow()
	}

	out, err := chat.Invoke(context.TODO(), map[string]any{"question": "why?"})
	if !assert.NoError(err) {
		t.FailNow()
	}
	conversation, ok := out.(schema.Conversation)
	if !assert.True(ok) {
		t.FailNow()
	}
	assert.Equal("why?", conversation.Last().Text())
}

const promptFile = `
name: assistant
description: A helpful assistant
messages:
  - role: system
    content: "Answer using the following context: {{ .context }}"
  - role: user
    content: "{{ .question }}"
`

func Test_file_001(t *testing.T) {
	assert := assert.New(t)

	chat, err := prompt.Read(strings.NewReader(promptFile))
	if !assert.NoError(err) {
		t.FailNow()
	}

	conversation, err := chat.Format(map[string]any{
		"context":  "the sky is green",
		"question": "what color is the sky?",
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	if !assert.Len(conversation, 2) {
		t.FailNow()
	}
	assert.Equal("Answer using the following context: the sky is green", conversation[0].Text())
}

func Test_file_002(t *testing.T) {
	assert := assert.New(t)

	// Not YAML
	_, err := prompt.Read(strings.NewReader("[this is not yaml"))
	assert.Error(err)

	// Missing file
	_, err = prompt.LoadFile("/does/not/exist.yaml")
	assert.Error(err)
}
