package anthropic

import (
	"context"
	"errors"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GENERATOR INTERFACE IMPLEMENTATION

// WithoutSession sends a single message and returns the response (stateless)
func (c *Client) WithoutSession(ctx context.Context, model schema.Model, message *schema.Message, opts ...opt.Opt) (*schema.Message, error) {
	if message == nil {
		return nil, chain.ErrBadParameter.With("WithoutSession requires a non-nil message")
	}
	if model.OwnedBy != c.Name() {
		return nil, chain.ErrBadParameter.With("model does not belong to this client")
	}

	response, _, err := c.Messages(ctx, model.Name, []*schema.Message{message}, opts...)
	return response, err
}

// WithSession sends a message within a conversation and returns the
// response (stateful); the message and response are appended to the
// conversation
func (c *Client) WithSession(ctx context.Context, model schema.Model, session *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, error) {
	if session == nil {
		return nil, chain.ErrBadParameter.With("WithSession requires a non-nil session")
	}
	if message == nil {
		return nil, chain.ErrBadParameter.With("WithSession requires a non-nil message")
	}
	if model.OwnedBy != c.Name() {
		return nil, chain.ErrBadParameter.With("model does not belong to this client")
	}

	// Append the message to the session
	session.Append(*message)

	// Generate a response
	response, usage, err := c.Messages(ctx, model.Name, *session, opts...)
	if err != nil && !errors.Is(err, chain.ErrMaxTokens) {
		return nil, err
	}

	// Append the response, attributing tokens
	if usage != nil {
		session.AppendWithOutput(*response, usage.InputTokens, usage.OutputTokens)
	} else {
		session.Append(*response)
	}

	// Return the response with any truncation error
	return response, err
}
