package prompt

import (
	"context"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatMessage is a role and templated content pair used to build a
// chat template.
type ChatMessage struct {
	Role    string `yaml:"role" json:"role"`
	Content string `yaml:"content" json:"content"`
}

// ChatTemplate renders a conversation from a map of values. Each
// message is a role with templated content.
type ChatTemplate struct {
	messages []chatMessage
}

type chatMessage struct {
	role string
	tmpl *Template
}

var _ chain.Runnable = (*ChatTemplate)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// FromMessages creates a chat template from role and content pairs.
// Content is parsed as a text template.
func FromMessages(messages ...ChatMessage) (*ChatTemplate, error) {
	if len(messages) == 0 {
		return nil, chain.ErrBadParameter.With("no messages")
	}
	chat := new(ChatTemplate)
	for _, message := range messages {
		switch message.Role {
		case schema.RoleSystem, schema.RoleUser, schema.RoleAssistant:
			// Valid role
		default:
			return nil, chain.ErrBadParameter.Withf("invalid role %q", message.Role)
		}
		tmpl, err := New(message.Content)
		if err != nil {
			return nil, err
		}
		chat.messages = append(chat.messages, chatMessage{role: message.Role, tmpl: tmpl})
	}
	return chat, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Format renders the conversation with the given values
func (c *ChatTemplate) Format(values map[string]any) (schema.Conversation, error) {
	conversation := make(schema.Conversation, 0, len(c.messages))
	for _, message := range c.messages {
		text, err := message.tmpl.Render(values)
		if err != nil {
			return nil, err
		}
		msg, err := schema.NewMessage(message.role, text)
		if err != nil {
			return nil, err
		}
		conversation = append(conversation, msg)
	}
	return conversation, nil
}

// Invoke renders the conversation as a pipeline stage. The input must
// be a map of template values; the output is a schema.Conversation.
func (c *ChatTemplate) Invoke(_ context.Context, input any, _ ...opt.Opt) (any, error) {
	values, ok := input.(map[string]any)
	if !ok {
		return nil, chain.ErrBadParameter.Withf("chat template requires a map input, got %T", input)
	}
	return c.Format(values)
}
