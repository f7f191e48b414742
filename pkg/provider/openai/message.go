package openai

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	openai "github.com/sashabaranov/go-openai"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// encodeMessage converts a provider-agnostic message to wire messages.
// A single message can expand to several: tool results become separate
// "tool" role messages.
func encodeMessage(message *schema.Message) ([]openai.ChatCompletionMessage, error) {
	var result []openai.ChatCompletionMessage

	// Tool results are sent as their own messages
	for _, block := range message.Content {
		if block.ToolResult == nil {
			continue
		}
		result = append(result, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			ToolCallID: block.ToolResult.ID,
			Content:    string(block.ToolResult.Content),
		})
	}

	// Gather the remaining blocks
	var text []string
	var parts []openai.ChatMessagePart
	var toolCalls []openai.ToolCall
	for _, block := range message.Content {
		switch {
		case block.Text != nil:
			text = append(text, *block.Text)
		case block.Attachment != nil:
			part, err := encodeAttachment(block.Attachment)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
		case block.ToolCall != nil:
			toolCalls = append(toolCalls, openai.ToolCall{
				ID:   block.ToolCall.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      block.ToolCall.Name,
					Arguments: string(block.ToolCall.Input),
				},
			})
		}
	}

	// Nothing left to send beyond tool results
	if len(text) == 0 && len(parts) == 0 && len(toolCalls) == 0 {
		return result, nil
	}

	msg := openai.ChatCompletionMessage{
		Role:      message.Role,
		ToolCalls: toolCalls,
	}
	if len(parts) > 0 {
		// Multimodal: text becomes the leading part
		if joined := strings.Join(text, "\n"); joined != "" {
			msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: joined,
			})
		}
		msg.MultiContent = append(msg.MultiContent, parts...)
	} else {
		msg.Content = strings.Join(text, "\n")
	}
	return append(result, msg), nil
}

// encodeAttachment converts an attachment to an image part, inlining raw
// data as a data URL
func encodeAttachment(attachment *schema.Attachment) (openai.ChatMessagePart, error) {
	if !strings.HasPrefix(attachment.Type, "image/") {
		return openai.ChatMessagePart{}, chain.ErrBadParameter.Withf("unsupported attachment type %q", attachment.Type)
	}

	var u string
	switch {
	case attachment.URL != nil:
		u = attachment.URL.String()
	case len(attachment.Data) > 0:
		u = fmt.Sprintf("data:%s;base64,%s", attachment.Type, base64.StdEncoding.EncodeToString(attachment.Data))
	default:
		return openai.ChatMessagePart{}, chain.ErrBadParameter.With("attachment has no data or URL")
	}

	return openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{
			URL:    u,
			Detail: openai.ImageURLDetailAuto,
		},
	}, nil
}

// decodeMessage converts a wire response message back to the
// provider-agnostic representation
func decodeMessage(message openai.ChatCompletionMessage, finishReason openai.FinishReason) *schema.Message {
	result := &schema.Message{
		Role:   message.Role,
		Result: resultType(finishReason),
	}
	if message.Content != "" {
		result.Content = append(result.Content, schema.ContentBlock{
			Text: types.Ptr(message.Content),
		})
	}
	for _, call := range message.ToolCalls {
		result.Content = append(result.Content, schema.ContentBlock{
			ToolCall: &schema.ToolCall{
				ID:    call.ID,
				Name:  call.Function.Name,
				Input: json.RawMessage(call.Function.Arguments),
			},
		})
	}
	return result
}

// resultType maps a finish reason to the provider-agnostic result type
func resultType(finishReason openai.FinishReason) schema.ResultType {
	switch finishReason {
	case openai.FinishReasonStop:
		return schema.ResultStop
	case openai.FinishReasonLength:
		return schema.ResultMaxTokens
	case openai.FinishReasonToolCalls, openai.FinishReasonFunctionCall:
		return schema.ResultToolCall
	case openai.FinishReasonContentFilter:
		return schema.ResultBlocked
	}
	return schema.ResultOther
}
