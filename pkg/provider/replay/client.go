/*
replay implements a deterministic offline provider which returns scripted
responses. It is used for examples and tests where no API key or network
access is available.
*/
package replay

import (
	"context"
	"sync"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Response is one scripted response in the replay sequence
type Response struct {
	Text      string            // Text content
	ToolCalls []schema.ToolCall // Tool calls, IDs assigned if empty
}

type Client struct {
	mu        sync.Mutex
	responses []Response
	index     int
}

var _ chain.Client = (*Client)(nil)
var _ chain.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultName  = "replay"
	defaultModel = "replay"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client with a sequence of scripted responses
func New(responses ...Response) (*Client, error) {
	if len(responses) == 0 {
		return nil, chain.ErrBadParameter.With("missing responses")
	}
	return &Client{responses: responses}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Return the name of the provider
func (*Client) Name() string {
	return defaultName
}

// ListModels returns the single replay model
func (c *Client) ListModels(_ context.Context, _ ...opt.Opt) ([]schema.Model, error) {
	return []schema.Model{c.model()}, nil
}

// GetModel returns the replay model by name
func (c *Client) GetModel(_ context.Context, name string, _ ...opt.Opt) (*schema.Model, error) {
	if name != defaultModel {
		return nil, chain.ErrNotFound.Withf("model %q", name)
	}
	return types.Ptr(c.model()), nil
}

// Model returns the replay model without a lookup
func (c *Client) Model() schema.Model {
	return c.model()
}

///////////////////////////////////////////////////////////////////////////////
// GENERATOR INTERFACE IMPLEMENTATION

// WithoutSession returns the next scripted response (stateless)
func (c *Client) WithoutSession(_ context.Context, model schema.Model, message *schema.Message, opts ...opt.Opt) (*schema.Message, error) {
	if message == nil {
		return nil, chain.ErrBadParameter.With("WithoutSession requires a non-nil message")
	}
	if model.OwnedBy != c.Name() {
		return nil, chain.ErrBadParameter.With("model does not belong to this client")
	}
	return c.next(opts...)
}

// WithSession returns the next scripted response, appending the message
// and response to the conversation (stateful)
func (c *Client) WithSession(_ context.Context, model schema.Model, session *schema.Conversation, message *schema.Message, opts ...opt.Opt) (*schema.Message, error) {
	if session == nil {
		return nil, chain.ErrBadParameter.With("WithSession requires a non-nil session")
	}
	if message == nil {
		return nil, chain.ErrBadParameter.With("WithSession requires a non-nil message")
	}
	if model.OwnedBy != c.Name() {
		return nil, chain.ErrBadParameter.With("model does not belong to this client")
	}

	response, err := c.next(opts...)
	if err != nil {
		return nil, err
	}
	session.Append(*message)
	session.Append(*response)
	return response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) model() schema.Model {
	return schema.Model{
		Name:        defaultModel,
		Description: "Deterministic replay model",
		Created:     time.Unix(0, 0),
		OwnedBy:     defaultName,
	}
}

// next pops the next scripted response and converts it into a message
func (c *Client) next(opts ...opt.Opt) (*schema.Message, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.index >= len(c.responses) {
		c.mu.Unlock()
		return nil, chain.ErrNotFound.With("no scripted responses remaining")
	}
	scripted := c.responses[c.index]
	c.index++
	c.mu.Unlock()

	message := &schema.Message{
		Role:   schema.RoleAssistant,
		Result: schema.ResultStop,
	}
	if scripted.Text != "" {
		message.Content = append(message.Content, schema.ContentBlock{
			Text: types.Ptr(scripted.Text),
		})
		if fn := options.GetStream(); fn != nil {
			fn(schema.RoleAssistant, scripted.Text)
		}
	}
	for _, call := range scripted.ToolCalls {
		if call.ID == "" {
			call.ID = "toolu_" + uuid.NewString()
		}
		message.Content = append(message.Content, schema.ContentBlock{
			ToolCall: &schema.ToolCall{ID: call.ID, Name: call.Name, Input: call.Input},
		})
		message.Result = schema.ResultToolCall
	}
	return message, nil
}
