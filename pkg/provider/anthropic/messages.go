package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	client "github.com/mutablelogic/go-client"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// toolkit is the subset of the toolkit API used to bind tools to a request
type toolkit interface {
	Definitions() ([]schema.ToolDefinition, error)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// MessagesRequest builds a messages request from options without sending it.
// Useful for testing and debugging.
func MessagesRequest(model string, messages []*schema.Message, opts ...opt.Opt) (any, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	return messagesRequestFromOpts(model, messages, options)
}

// Messages generates the next message from a sequence of messages. The
// conversation is not modified: the caller decides what to keep.
func (anthropic *Client) Messages(ctx context.Context, model string, messages []*schema.Message, opts ...opt.Opt) (*schema.Message, *messagesUsage, error) {
	// Apply the options
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, nil, err
	}

	// Build the request
	req, err := messagesRequestFromOpts(model, messages, options)
	if err != nil {
		return nil, nil, err
	}

	// Create a request
	request, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, nil, err
	}

	// Send the request, with a stream callback if streaming
	var response messagesResponse
	reqopts := []client.RequestOpt{
		client.OptPath("messages"),
	}
	if req.Stream {
		fn := options.GetStream()
		reqopts = append(reqopts, client.OptTextStreamCallback(func(evt client.TextStreamEvent) error {
			return streamEvent(&response, evt, fn)
		}))
	}
	if err := anthropic.DoWithContext(ctx, request, &response, reqopts...); err != nil {
		return nil, nil, err
	}

	// Refusals carry no usable message
	if response.StopReason == StopReasonRefusal {
		return nil, nil, chain.ErrRefusal
	}

	// Convert the response into a message
	message := &schema.Message{
		Role:    response.Role,
		Content: decodeContent(response.Content),
		Result:  resultType(response.StopReason),
		Meta: map[string]any{
			"id":    response.Id,
			"model": response.Model,
		},
	}

	// Truncation is reported alongside the partial message
	if response.StopReason == StopReasonMaxTokens {
		return message, &response.Usage, chain.ErrMaxTokens
	}

	// Return success
	return message, &response.Usage, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// messagesRequestFromOpts builds a messagesRequest from applied options
func messagesRequestFromOpts(model string, messages []*schema.Message, options opt.Options) (*messagesRequest, error) {
	if model == "" {
		return nil, chain.ErrBadParameter.With("missing model")
	}
	if len(messages) == 0 {
		return nil, chain.ErrBadParameter.With("missing messages")
	}

	// Encode the messages
	params := make([]messageParam, 0, len(messages))
	for _, message := range messages {
		param, err := encodeMessage(message)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}

	// Add metadata if user_id is set
	var metadata *messagesMetadata
	if userId := options.GetString(opt.UserIdKey); userId != "" {
		metadata = &messagesMetadata{UserId: userId}
	}

	// Get temperature if set
	var temperature *float64
	if options.Has(opt.TemperatureKey) {
		v := options.GetFloat64(opt.TemperatureKey)
		temperature = &v
	}

	// Get max tokens
	maxTokens := defaultMaxTokens
	if options.Has(opt.MaxTokensKey) {
		maxTokens = int(options.GetUint(opt.MaxTokensKey))
	}

	// Get top_k if set
	var topK *uint
	if options.Has(opt.TopKKey) {
		v := options.GetUint(opt.TopKKey)
		topK = &v
	}

	// Get top_p if set
	var topP *float64
	if options.Has(opt.TopPKey) {
		v := options.GetFloat64(opt.TopPKey)
		topP = &v
	}

	// Get tool choice if set
	var toolCh *toolChoice
	if tc := options.GetString(opt.ToolChoiceKey); tc != "" {
		toolCh = &toolChoice{Type: tc}
		if tc == "tool" {
			toolCh.Name = options.GetString(opt.ToolChoiceNameKey)
		}
	}

	// Get bound tools if a toolkit is set
	tools, err := toolsFromOpts(options)
	if err != nil {
		return nil, err
	}

	return &messagesRequest{
		MaxTokens:     maxTokens,
		Messages:      params,
		Metadata:      metadata,
		Model:         model,
		StopSequences: options.GetStringArray(opt.StopSequencesKey),
		Stream:        options.GetStream() != nil,
		System:        options.GetString(opt.SystemPromptKey),
		Temperature:   temperature,
		ToolChoice:    toolCh,
		Tools:         tools,
		TopK:          topK,
		TopP:          topP,
	}, nil
}

// toolsFromOpts converts a bound toolkit into wire tool definitions
func toolsFromOpts(options opt.Options) ([]toolParam, error) {
	v := options.Get(opt.ToolkitKey)
	if v == nil {
		return nil, nil
	}
	tk, ok := v.(toolkit)
	if !ok {
		return nil, chain.ErrBadParameter.Withf("invalid toolkit %T", v)
	}
	definitions, err := tk.Definitions()
	if err != nil {
		return nil, err
	}
	tools := make([]toolParam, 0, len(definitions))
	for _, definition := range definitions {
		tools = append(tools, toolParam{
			Name:        definition.Name,
			Description: definition.Description,
			InputSchema: definition.InputSchema,
		})
	}
	return tools, nil
}

// streamEvent folds one server-sent event into the accumulated response,
// emitting text deltas through fn
func streamEvent(response *messagesResponse, evt client.TextStreamEvent, fn opt.StreamFn) error {
	switch evt.Event {
	case "message_start":
		var r struct {
			Type     string           `json:"type"`
			Response messagesResponse `json:"message"`
		}
		if err := evt.Json(&r); err != nil {
			return err
		}
		*response = r.Response
	case "content_block_start":
		var r struct {
			Type    string       `json:"type"`
			Index   uint         `json:"index"`
			Content contentBlock `json:"content_block"`
		}
		if err := evt.Json(&r); err != nil {
			return err
		} else if int(r.Index) != len(response.Content) {
			return fmt.Errorf("%s: unexpected index %d", r.Type, r.Index)
		}
		response.Content = append(response.Content, r.Content)
	case "content_block_delta":
		var r struct {
			Type    string       `json:"type"`
			Index   uint         `json:"index"`
			Content contentBlock `json:"delta"`
		}
		if err := evt.Json(&r); err != nil {
			return err
		} else if int(r.Index) != len(response.Content)-1 {
			return fmt.Errorf("%s: unexpected index %d", r.Type, r.Index)
		} else if err := appendDelta(response.Content, &r.Content); err != nil {
			return err
		}
		if fn != nil && r.Content.Type == "text_delta" {
			fn(schema.RoleAssistant, r.Content.Text)
		}
	case "content_block_stop":
		var r struct {
			Type  string `json:"type"`
			Index uint   `json:"index"`
		}
		if err := evt.Json(&r); err != nil {
			return err
		} else if int(r.Index) != len(response.Content)-1 {
			return fmt.Errorf("%s: unexpected index %d", r.Type, r.Index)
		}
		// Convert accumulated partial_json into the tool input
		content := &response.Content[r.Index]
		if content.Type == "tool_use" && content.InputJson != "" {
			content.Input = json.RawMessage(content.InputJson)
			content.InputJson = ""
		}
	case "message_delta":
		var r struct {
			Type  string           `json:"type"`
			Delta messagesResponse `json:"delta"`
			Usage messagesUsage    `json:"usage"`
		}
		if err := evt.Json(&r); err != nil {
			return err
		}
		response.StopReason = r.Delta.StopReason
		response.StopSequence = r.Delta.StopSequence
		response.Usage.InputTokens += r.Usage.InputTokens
		response.Usage.OutputTokens += r.Usage.OutputTokens
	}

	// Ignore message_stop, ping and unknown events
	return nil
}

// appendDelta appends a streaming delta to the last content block
func appendDelta(content []contentBlock, delta *contentBlock) error {
	if len(content) == 0 {
		return fmt.Errorf("unexpected delta")
	}
	last := &content[len(content)-1]
	switch {
	case last.Type == "text" && delta.Type == "text_delta":
		last.Text += delta.Text
	case last.Type == "tool_use" && delta.Type == "input_json_delta":
		last.InputJson += delta.InputJson
	default:
		return fmt.Errorf("unexpected delta %s for %s", delta.Type, last.Type)
	}
	return nil
}
