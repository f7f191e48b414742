package anthropic

import (
	"encoding/json"

	// Packages
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type messagesRequest struct {
	MaxTokens     int               `json:"max_tokens"`
	Messages      []messageParam    `json:"messages"`
	Metadata      *messagesMetadata `json:"metadata,omitempty"`
	Model         string            `json:"model"`
	StopSequences []string          `json:"stop_sequences,omitempty"`
	Stream        bool              `json:"stream,omitempty"`
	System        string            `json:"system,omitempty"`
	Temperature   *float64          `json:"temperature,omitempty"`
	ToolChoice    *toolChoice       `json:"tool_choice,omitempty"`
	Tools         []toolParam       `json:"tools,omitempty"`
	TopK          *uint             `json:"top_k,omitempty"`
	TopP          *float64          `json:"top_p,omitempty"`
}

type messageParam struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

// contentBlock is the provider's content union, discriminated by Type.
// The same shape is used for requests, responses and stream deltas.
type contentBlock struct {
	Type string `json:"type"`

	// type == "text" or "text_delta"
	Text string `json:"text,omitempty"`

	// type == "image" or "document"
	Source *contentSource `json:"source,omitempty"`

	// type == "tool_use"
	Id    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// type == "tool_result"
	ToolUseId string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`

	// type == "input_json_delta" (streaming)
	InputJson string `json:"partial_json,omitempty"`
}

type contentSource struct {
	Type      string `json:"type"`                 // "base64" or "url"
	MediaType string `json:"media_type,omitempty"` // image/png, application/pdf, etc.
	Data      []byte `json:"data,omitempty"`       // base64-encoded by the JSON marshaler
	URL       string `json:"url,omitempty"`
}

type toolChoice struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

type toolParam struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	InputSchema any    `json:"input_schema"`
}

type messagesMetadata struct {
	UserId string `json:"user_id,omitempty"`
}

type messagesResponse struct {
	Id           string         `json:"id"`
	Model        string         `json:"model"`
	Type         string         `json:"type"`
	Role         string         `json:"role"`
	Content      []contentBlock `json:"content"`
	StopReason   string         `json:"stop_reason"`
	StopSequence *string        `json:"stop_sequence,omitempty"`
	Usage        messagesUsage  `json:"usage"`
}

type messagesUsage struct {
	InputTokens  uint `json:"input_tokens"`
	OutputTokens uint `json:"output_tokens"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultMaxTokens = 1024
)

// Stop reasons returned by the API
const (
	StopReasonEndTurn      = "end_turn"      // Normal completion
	StopReasonMaxTokens    = "max_tokens"    // Response was truncated
	StopReasonStopSequence = "stop_sequence" // Hit a stop sequence
	StopReasonToolUse      = "tool_use"      // Model wants to use a tool
	StopReasonRefusal      = "refusal"       // Model refused to respond
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// resultType maps a stop reason to the provider-agnostic result type
func resultType(stopReason string) schema.ResultType {
	switch stopReason {
	case StopReasonEndTurn, StopReasonStopSequence:
		return schema.ResultStop
	case StopReasonMaxTokens:
		return schema.ResultMaxTokens
	case StopReasonToolUse:
		return schema.ResultToolCall
	case StopReasonRefusal:
		return schema.ResultBlocked
	}
	return schema.ResultOther
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r messagesResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}
