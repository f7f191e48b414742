package main

import (
	"context"
	"encoding/json"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	chain "github.com/mutablelogic/go-chain"
	tool "github.com/mutablelogic/go-chain/pkg/tool"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// builtinToolkit returns the tools available to the ask and run commands
func builtinToolkit() (*tool.Toolkit, error) {
	currentTime, err := tool.NewFunc("current_time", "Get the current date and time, optionally in a named timezone", &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"timezone": {
				Type:        "string",
				Description: "IANA timezone name, for example Europe/Berlin. Defaults to UTC.",
			},
		},
	}, runCurrentTime)
	if err != nil {
		return nil, err
	}

	wordCount, err := tool.NewFunc("word_count", "Count the words in a piece of text", &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"text": {
				Type:        "string",
				Description: "The text to count words in",
			},
		},
		Required: []string{"text"},
	}, runWordCount)
	if err != nil {
		return nil, err
	}

	return tool.NewToolkit(currentTime, wordCount)
}

func runCurrentTime(_ context.Context, input json.RawMessage) (any, error) {
	var args struct {
		Timezone string `json:"timezone"`
	}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return nil, err
		}
	}

	location := time.UTC
	if args.Timezone != "" {
		var err error
		location, err = time.LoadLocation(args.Timezone)
		if err != nil {
			return nil, chain.ErrBadParameter.Withf("unknown timezone %q", args.Timezone)
		}
	}
	return map[string]any{
		"time":     time.Now().In(location).Format(time.RFC3339),
		"timezone": location.String(),
	}, nil
}

func runWordCount(_ context.Context, input json.RawMessage) (any, error) {
	var args struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, err
	}

	count := 0
	inWord := false
	for _, r := range args.Text {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			inWord = false
		case !inWord:
			inWord = true
			count++
		}
	}
	return map[string]any{"words": count}, nil
}
