package runnable

import (
	"context"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// model adapts a chain.Generator to a pipeline stage
type model struct {
	generator chain.Generator
	model     schema.Model
}

var _ chain.Runnable = (*model)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Model adapts a generator and model to a Runnable. The stage accepts a
// string, a *schema.Message or a schema.Conversation as input and returns
// the *schema.Message response. Attach tools or sampling parameters with
// Bind:
//
//	Bind(Model(client, m), tool.WithToolkit(tk), opt.WithTemperature(0.2))
func Model(generator chain.Generator, m schema.Model) chain.Runnable {
	return &model{generator: generator, model: m}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Invoke sends the input to the model and returns the response message
func (m *model) Invoke(ctx context.Context, input any, opts ...opt.Opt) (any, error) {
	switch v := input.(type) {
	case string:
		message, err := schema.NewMessage(schema.RoleUser, v)
		if err != nil {
			return nil, err
		}
		return m.generator.WithoutSession(ctx, m.model, message, opts...)
	case *schema.Message:
		return m.generator.WithoutSession(ctx, m.model, v, opts...)
	case schema.Message:
		return m.generator.WithoutSession(ctx, m.model, &v, opts...)
	case schema.Conversation:
		return m.invokeConversation(ctx, v, opts...)
	case *schema.Conversation:
		return m.invokeConversation(ctx, *v, opts...)
	}
	return nil, chain.ErrBadParameter.Withf("model stage cannot accept %T", input)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// invokeConversation sends the last message of a conversation within the
// context of the preceding messages. The caller's conversation is not
// mutated.
func (m *model) invokeConversation(ctx context.Context, conv schema.Conversation, opts ...opt.Opt) (any, error) {
	last := conv.Last()
	if last == nil {
		return nil, chain.ErrBadParameter.With("conversation is empty")
	}

	// System messages are carried as an option so providers can place them
	// where their wire format requires
	session := make(schema.Conversation, 0, len(conv))
	for _, msg := range conv[:len(conv)-1] {
		if msg.Role == schema.RoleSystem {
			opts = append(opts, opt.WithSystemPrompt(msg.Text()))
			continue
		}
		session = append(session, msg)
	}

	return m.generator.WithSession(ctx, m.model, &session, last, opts...)
}
