package anthropic

import (
	"context"
	"net/url"
	"strconv"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// modelMeta is the wire representation of a model
type modelMeta struct {
	Name        string     `json:"id"`
	Description string     `json:"display_name,omitempty"`
	Type        string     `json:"type,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetModel returns a model by name
func (anthropic *Client) GetModel(ctx context.Context, name string, _ ...opt.Opt) (*schema.Model, error) {
	var response modelMeta
	if err := anthropic.DoWithContext(ctx, nil, &response, client.OptPath("models", name)); err != nil {
		return nil, err
	}
	model := anthropic.modelFromMeta(response)
	return &model, nil
}

// ListModels returns all available models, following pagination
func (anthropic *Client) ListModels(ctx context.Context, opts ...opt.Opt) ([]schema.Model, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	var response struct {
		Body    []modelMeta `json:"data"`
		HasMore bool        `json:"has_more"`
		FirstId string      `json:"first_id"`
		LastId  string      `json:"last_id"`
	}

	request := url.Values{}
	if limit := options.GetUint(opt.LimitKey); limit > 0 {
		request.Set("limit", strconv.FormatUint(uint64(limit), 10))
	}

	result := make([]schema.Model, 0, 100)
	for {
		if err := anthropic.DoWithContext(ctx, nil, &response, client.OptPath("models"), client.OptQuery(request)); err != nil {
			return nil, err
		}

		for _, meta := range response.Body {
			result = append(result, anthropic.modelFromMeta(meta))
		}

		// If there are no more models, return
		if !response.HasMore {
			break
		} else {
			request.Set("after_id", response.LastId)
		}
	}

	// Return models
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (anthropic *Client) modelFromMeta(meta modelMeta) schema.Model {
	model := schema.Model{
		Name:        meta.Name,
		Description: meta.Description,
		OwnedBy:     anthropic.Name(),
	}
	if meta.CreatedAt != nil {
		model.Created = *meta.CreatedAt
	}
	return model
}
