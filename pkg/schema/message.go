package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	// Packages
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message represents a single turn in a conversation with a model.
// It uses a universal content block representation that providers
// marshal into their own wire formats.
type Message struct {
	Role    string         `json:"role"`             // "user", "assistant", "system"
	Content []ContentBlock `json:"content"`          // Ordered content blocks
	Tokens  uint           `json:"tokens,omitempty"` // Number of tokens
	Result  ResultType     `json:"result,omitempty"` // Result type
	Meta    map[string]any `json:"meta,omitzero"`    // Provider-specific metadata
}

// ContentBlock represents a single piece of content within a message.
// Exactly one of the fields should be non-nil.
type ContentBlock struct {
	Text       *string     `json:"text,omitempty"`        // Text content
	Attachment *Attachment `json:"attachment,omitempty"`  // Image, audio, document, etc.
	ToolCall   *ToolCall   `json:"tool_call,omitempty"`   // Tool invocation (assistant → user)
	ToolResult *ToolResult `json:"tool_result,omitempty"` // Tool response (user → assistant)
}

// Attachment represents binary or URL-referenced media. The media-type tag
// is a MIME type; inline data is carried as raw bytes and base64-encoded
// at the provider wire layer.
type Attachment struct {
	Type string   `json:"type"`           // MIME type: "image/png", "audio/wav", etc.
	Data []byte   `json:"data,omitempty"` // Raw binary data
	URL  *url.URL `json:"url,omitempty"`  // URL reference
}

// ToolCall represents a tool invocation requested by the model
type ToolCall struct {
	ID    string          `json:"id,omitempty"`    // Provider-assigned call ID
	Name  string          `json:"name"`            // Tool name
	Input json.RawMessage `json:"input,omitempty"` // JSON-encoded arguments
}

// ToolResult represents the result of running a tool
type ToolResult struct {
	ID      string          `json:"id,omitempty"`      // Matches the ToolCall ID
	Name    string          `json:"name,omitempty"`    // Tool name
	Content json.RawMessage `json:"content,omitempty"` // JSON-encoded result
	IsError bool            `json:"is_error,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// Message role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMessage creates a message with the given role and text content.
// Additional content blocks (attachments, tool results) can be appended
// through options.
func NewMessage(role string, text string, opts ...opt.Opt) (*Message, error) {
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Create content blocks
	var blocks []ContentBlock
	if text != "" {
		blocks = append(blocks, ContentBlock{Text: types.Ptr(text)})
	}
	for _, v := range o.GetAll(opt.ContentBlockKey) {
		block, ok := v.(ContentBlock)
		if !ok {
			return nil, fmt.Errorf("invalid content block option")
		}
		blocks = append(blocks, block)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("message requires text or content blocks")
	}

	// Return the message
	return types.Ptr(Message{
		Role:    role,
		Content: blocks,
	}), nil
}

// NewToolResult creates a content block containing a successful tool result
func NewToolResult(id, name string, v any) ContentBlock {
	data, err := json.Marshal(v)
	if err != nil {
		return NewToolError(id, name, err)
	}
	return ContentBlock{
		ToolResult: &ToolResult{
			ID:      id,
			Name:    name,
			Content: json.RawMessage(data),
		},
	}
}

// NewToolError creates a content block containing a tool error result
func NewToolError(id, name string, err error) ContentBlock {
	return ContentBlock{
		ToolResult: &ToolResult{
			ID:      id,
			Name:    name,
			Content: json.RawMessage(fmt.Sprintf("%q", err.Error())),
			IsError: true,
		},
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Text returns the concatenated text content from all text blocks in the message
func (m Message) Text() string {
	var result []string
	for _, block := range m.Content {
		if block.Text != nil {
			result = append(result, *block.Text)
		}
	}
	return strings.Join(result, "\n")
}

// ToolCalls returns all tool call blocks in the message
func (m Message) ToolCalls() []ToolCall {
	var result []ToolCall
	for _, block := range m.Content {
		if block.ToolCall != nil {
			result = append(result, *block.ToolCall)
		}
	}
	return result
}

// Attachments returns all attachment blocks in the message
func (m Message) Attachments() []Attachment {
	var result []Attachment
	for _, block := range m.Content {
		if block.Attachment != nil {
			result = append(result, *block.Attachment)
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return stringify(m)
}

////////////////////////////////////////////////////////////////////////////////
// MESSAGE OPTIONS

// WithAttachment creates an attachment content block from data read from the
// reader. The MIME type is detected from the data. The caller is responsible
// for closing the reader after the data is read.
func WithAttachment(r io.Reader) opt.Opt {
	data, err := io.ReadAll(r)
	if err != nil {
		return opt.Error(err)
	}
	return opt.AddAny(opt.ContentBlockKey, ContentBlock{
		Attachment: types.Ptr(Attachment{
			Type: http.DetectContentType(data),
			Data: data,
		}),
	})
}

// WithAttachmentURL creates an attachment content block from a URL and
// explicit MIME type
func WithAttachmentURL(u string, mimetype string) opt.Opt {
	url, err := url.Parse(u)
	if err != nil {
		return opt.Error(fmt.Errorf("invalid URL: %w", err))
	}
	return opt.AddAny(opt.ContentBlockKey, ContentBlock{
		Attachment: types.Ptr(Attachment{
			Type: mimetype,
			URL:  url,
		}),
	})
}
