package main

import (
	"errors"
	"fmt"
	"os"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	tool "github.com/mutablelogic/go-chain/pkg/tool"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type AskCmd struct {
	Model       string   `arg:"" help:"Model name"`
	Prompt      string   `arg:"" help:"Prompt text"`
	File        []string `help:"Attach a file to the prompt" type:"existingfile"`
	Url         []string `help:"Attach a URL with an explicit MIME type, as url=mimetype"`
	System      string   `help:"Set the system prompt"`
	Temperature *float64 `help:"Sampling temperature (0.0 to 2.0)"`
	MaxTokens   uint     `help:"Maximum tokens to generate"`
	Tools       bool     `help:"Make the built-in tools available to the model"`
	NoStream    bool     `help:"Disable streaming output"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *AskCmd) Run(globals *Globals) error {
	client, model, err := globals.clientForModel(globals.ctx, cmd.Model)
	if err != nil {
		return err
	}

	// Build message options from attachments
	msgopts, err := cmd.attachments()
	if err != nil {
		return err
	}
	message, err := schema.NewMessage(schema.RoleUser, cmd.Prompt, msgopts...)
	if err != nil {
		return err
	}

	// Build request options
	opts := []opt.Opt{}
	if cmd.System != "" {
		opts = append(opts, opt.WithSystemPrompt(cmd.System))
	}
	if cmd.Temperature != nil {
		opts = append(opts, opt.WithTemperature(*cmd.Temperature))
	}
	if cmd.MaxTokens > 0 {
		opts = append(opts, opt.WithMaxTokens(cmd.MaxTokens))
	}
	if cmd.Tools {
		opts = append(opts, tool.WithToolkit(globals.toolkit))
	}
	if !cmd.NoStream {
		opts = append(opts, opt.WithStream(func(_, text string) {
			fmt.Fprint(os.Stderr, text)
		}))
	}

	// Conduct the conversation, running tools until the model stops
	// requesting them
	var session schema.Conversation
	response, err := client.WithSession(globals.ctx, *model, &session, message, opts...)
	for {
		if errors.Is(err, chain.ErrMaxTokens) {
			fmt.Fprintln(os.Stderr, "(response truncated)")
		} else if err != nil {
			return err
		}
		if response.Result != schema.ResultToolCall {
			break
		}

		results, err2 := globals.toolkit.RunCalls(globals.ctx, response.ToolCalls()...)
		if err2 != nil {
			return err2
		}
		next := &schema.Message{Role: schema.RoleUser, Content: results}
		response, err = client.WithSession(globals.ctx, *model, &session, next, opts...)
	}

	if !cmd.NoStream {
		fmt.Fprintln(os.Stderr)
	}
	return render(os.Stdout, response.Text())
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// attachments converts --file and --url flags into message options
func (cmd *AskCmd) attachments() ([]opt.Opt, error) {
	var opts []opt.Opt
	for _, path := range cmd.File {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, schema.WithAttachment(f))
		f.Close()
	}
	for _, u := range cmd.Url {
		url, mimetype, ok := cutLast(u, "=")
		if !ok {
			return nil, chain.ErrBadParameter.Withf("expected url=mimetype, got %q", u)
		}
		opts = append(opts, schema.WithAttachmentURL(url, mimetype))
	}
	return opts, nil
}

// cutLast splits s on the last occurrence of sep
func cutLast(s, sep string) (string, string, bool) {
	for i := len(s) - len(sep); i >= 0; i-- {
		if s[i:i+len(sep)] == sep {
			return s[:i], s[i+len(sep):], true
		}
	}
	return s, "", false
}
