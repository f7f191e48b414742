package openai

import (
	"context"
	"errors"
	"io"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	openai "github.com/sashabaranov/go-openai"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// toolkit is the subset of the toolkit API used to bind tools to a request
type toolkit interface {
	Definitions() ([]schema.ToolDefinition, error)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ChatRequest builds a chat completion request from options without
// sending it. Useful for testing and debugging.
func ChatRequest(model string, messages []*schema.Message, opts ...opt.Opt) (any, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	return chatRequestFromOpts(model, messages, options)
}

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
	response, _, err := c.chat(ctx, model.Name, []*schema.Message{message}, opts...)
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

	session.Append(*message)

	response, usage, err := c.chat(ctx, model.Name, *session, opts...)
	if err != nil && !errors.Is(err, chain.ErrMaxTokens) {
		return nil, err
	}

	if usage != nil {
		session.AppendWithOutput(*response, uint(usage.PromptTokens), uint(usage.CompletionTokens))
	} else {
		session.Append(*response)
	}
	return response, err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// chat sends a chat completion request, streaming if a callback is set
func (c *Client) chat(ctx context.Context, model string, messages []*schema.Message, opts ...opt.Opt) (*schema.Message, *openai.Usage, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, nil, err
	}

	request, err := chatRequestFromOpts(model, messages, options)
	if err != nil {
		return nil, nil, err
	}

	// Stream if a callback is set
	if fn := options.GetStream(); fn != nil {
		request.Stream = true
		return c.chatStream(ctx, request, fn)
	}

	response, err := c.api.CreateChatCompletion(ctx, *request)
	if err != nil {
		return nil, nil, err
	}
	if len(response.Choices) == 0 {
		return nil, nil, chain.ErrInternalServerError.With("no choices in response")
	}

	choice := response.Choices[0]
	message := decodeMessage(choice.Message, choice.FinishReason)
	message.Meta = map[string]any{
		"id":    response.ID,
		"model": response.Model,
	}
	if choice.FinishReason == openai.FinishReasonLength {
		return message, &response.Usage, chain.ErrMaxTokens
	}
	return message, &response.Usage, nil
}

// chatStream reads a streaming chat completion, accumulating deltas and
// emitting text through fn
func (c *Client) chatStream(ctx context.Context, request *openai.ChatCompletionRequest, fn opt.StreamFn) (*schema.Message, *openai.Usage, error) {
	request.StreamOptions = &openai.StreamOptions{IncludeUsage: true}
	stream, err := c.api.CreateChatCompletionStream(ctx, *request)
	if err != nil {
		return nil, nil, err
	}
	defer stream.Close()

	var accumulated openai.ChatCompletionMessage
	var finishReason openai.FinishReason
	var usage *openai.Usage
	accumulated.Role = schema.RoleAssistant

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, nil, err
		}
		if response.Usage != nil {
			usage = response.Usage
		}
		if len(response.Choices) == 0 {
			continue
		}

		choice := response.Choices[0]
		if choice.FinishReason != "" {
			finishReason = choice.FinishReason
		}
		if choice.Delta.Content != "" {
			accumulated.Content += choice.Delta.Content
			fn(schema.RoleAssistant, choice.Delta.Content)
		}
		for _, delta := range choice.Delta.ToolCalls {
			accumulated.ToolCalls = appendToolCallDelta(accumulated.ToolCalls, delta)
		}
	}

	message := decodeMessage(accumulated, finishReason)
	if finishReason == openai.FinishReasonLength {
		return message, usage, chain.ErrMaxTokens
	}
	return message, usage, nil
}

// appendToolCallDelta folds a streamed tool call fragment into the
// accumulated calls, keyed by index
func appendToolCallDelta(calls []openai.ToolCall, delta openai.ToolCall) []openai.ToolCall {
	index := len(calls)
	if delta.Index != nil {
		index = *delta.Index
	}
	for index >= len(calls) {
		calls = append(calls, openai.ToolCall{Type: openai.ToolTypeFunction})
	}
	call := &calls[index]
	if delta.ID != "" {
		call.ID = delta.ID
	}
	if delta.Function.Name != "" {
		call.Function.Name = delta.Function.Name
	}
	call.Function.Arguments += delta.Function.Arguments
	return calls
}

// chatRequestFromOpts builds a chat completion request from applied options
func chatRequestFromOpts(model string, messages []*schema.Message, options opt.Options) (*openai.ChatCompletionRequest, error) {
	if model == "" {
		return nil, chain.ErrBadParameter.With("missing model")
	}
	if len(messages) == 0 {
		return nil, chain.ErrBadParameter.With("missing messages")
	}

	request := openai.ChatCompletionRequest{
		Model: model,
		User:  options.GetString(opt.UserIdKey),
		Stop:  options.GetStringArray(opt.StopSequencesKey),
	}

	// The system prompt is the leading message
	if system := options.GetString(opt.SystemPromptKey); system != "" {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, message := range messages {
		encoded, err := encodeMessage(message)
		if err != nil {
			return nil, err
		}
		request.Messages = append(request.Messages, encoded...)
	}

	if options.Has(opt.TemperatureKey) {
		request.Temperature = float32(options.GetFloat64(opt.TemperatureKey))
	}
	if options.Has(opt.MaxTokensKey) {
		request.MaxCompletionTokens = int(options.GetUint(opt.MaxTokensKey))
	}
	if options.Has(opt.TopPKey) {
		request.TopP = float32(options.GetFloat64(opt.TopPKey))
	}

	// Bound tools
	if v := options.Get(opt.ToolkitKey); v != nil {
		tk, ok := v.(toolkit)
		if !ok {
			return nil, chain.ErrBadParameter.Withf("invalid toolkit %T", v)
		}
		definitions, err := tk.Definitions()
		if err != nil {
			return nil, err
		}
		for _, definition := range definitions {
			request.Tools = append(request.Tools, openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        definition.Name,
					Description: definition.Description,
					Parameters:  definition.InputSchema,
				},
			})
		}
	}

	// Tool choice
	if tc := options.GetString(opt.ToolChoiceKey); tc != "" {
		switch tc {
		case "auto", "none":
			request.ToolChoice = tc
		case "any":
			request.ToolChoice = "required"
		case "tool":
			request.ToolChoice = openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: options.GetString(opt.ToolChoiceNameKey),
				},
			}
		default:
			return nil, chain.ErrBadParameter.Withf("invalid tool choice %q", tc)
		}
	}

	return &request, nil
}
