package anthropic

import (
	"strings"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	supportedAttachments = map[string]string{
		"image/jpeg":      "image",
		"image/png":       "image",
		"image/gif":       "image",
		"image/webp":      "image",
		"application/pdf": "document",
	}
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// encodeMessage converts a provider-agnostic message to the wire format
func encodeMessage(message *schema.Message) (messageParam, error) {
	param := messageParam{
		Role:    message.Role,
		Content: make([]contentBlock, 0, len(message.Content)),
	}
	for _, block := range message.Content {
		encoded, err := encodeContent(block)
		if err != nil {
			return messageParam{}, err
		}
		param.Content = append(param.Content, encoded)
	}
	return param, nil
}

// encodeContent converts one content block to the wire format
func encodeContent(block schema.ContentBlock) (contentBlock, error) {
	switch {
	case block.Text != nil:
		return contentBlock{Type: "text", Text: *block.Text}, nil
	case block.Attachment != nil:
		return encodeAttachment(block.Attachment)
	case block.ToolCall != nil:
		return contentBlock{
			Type:  "tool_use",
			Id:    block.ToolCall.ID,
			Name:  block.ToolCall.Name,
			Input: block.ToolCall.Input,
		}, nil
	case block.ToolResult != nil:
		return contentBlock{
			Type:      "tool_result",
			ToolUseId: block.ToolResult.ID,
			Content:   block.ToolResult.Content,
			IsError:   block.ToolResult.IsError,
		}, nil
	}
	return contentBlock{}, chain.ErrBadParameter.With("empty content block")
}

// encodeAttachment converts an attachment to an image or document block,
// sourced from raw data or a URL
func encodeAttachment(attachment *schema.Attachment) (contentBlock, error) {
	typ, exists := supportedAttachments[attachment.Type]
	if !exists {
		return contentBlock{}, chain.ErrBadParameter.Withf("unsupported attachment type %q", attachment.Type)
	}

	switch {
	case attachment.URL != nil:
		return contentBlock{
			Type: typ,
			Source: &contentSource{
				Type: "url",
				URL:  attachment.URL.String(),
			},
		}, nil
	case len(attachment.Data) > 0:
		return contentBlock{
			Type: typ,
			Source: &contentSource{
				Type:      "base64",
				MediaType: attachment.Type,
				Data:      attachment.Data,
			},
		}, nil
	}
	return contentBlock{}, chain.ErrBadParameter.With("attachment has no data or URL")
}

// decodeContent converts wire content blocks back to the provider-agnostic
// representation
func decodeContent(content []contentBlock) []schema.ContentBlock {
	result := make([]schema.ContentBlock, 0, len(content))
	for _, block := range content {
		switch block.Type {
		case "text":
			result = append(result, schema.ContentBlock{
				Text: types.Ptr(block.Text),
			})
		case "tool_use":
			result = append(result, schema.ContentBlock{
				ToolCall: &schema.ToolCall{
					ID:    block.Id,
					Name:  block.Name,
					Input: block.Input,
				},
			})
		case "thinking":
			// Thinking blocks are surfaced as text prefixed by nothing;
			// skip empty ones
			if text := strings.TrimSpace(block.Text); text != "" {
				result = append(result, schema.ContentBlock{
					Text: types.Ptr(block.Text),
				})
			}
		}
	}
	return result
}
