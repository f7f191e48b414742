package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	chain "github.com/mutablelogic/go-chain"
	client "github.com/mutablelogic/go-client"
	anthropic "github.com/mutablelogic/go-chain/pkg/provider/anthropic"
	openai "github.com/mutablelogic/go-chain/pkg/provider/openai"
	schema "github.com/mutablelogic/go-chain/pkg/schema"
	tool "github.com/mutablelogic/go-chain/pkg/tool"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Providers
	Anthropic `embed:"" help:"Anthropic configuration"`
	OpenAI    `embed:"" help:"OpenAI configuration"`
	Ollama    `embed:"" help:"Ollama configuration"`

	// Context
	ctx     context.Context
	toolkit *tool.Toolkit
}

type Anthropic struct {
	AnthropicKey string `env:"ANTHROPIC_API_KEY" help:"Anthropic API Key"`
}

type OpenAI struct {
	OpenAIKey string `env:"OPENAI_API_KEY" help:"OpenAI API Key"`
}

type Ollama struct {
	OllamaEndpoint string `env:"OLLAMA_URL" help:"Ollama endpoint"`
}

type CLI struct {
	Globals

	// Models and Tools
	Models ListModelsCmd `cmd:"" help:"Return a list of models"`
	Tools  ListToolsCmd  `cmd:"" help:"Return a list of tools"`
	Run    RunToolCmd    `cmd:"" help:"Run a tool with JSON input"`

	// Generation
	Ask AskCmd `cmd:"" help:"Generate a response to a prompt"`

	// Retrieval
	Index IndexCmd `cmd:"" help:"Index documents into a vector store"`
	Query QueryCmd `cmd:"" help:"Query a vector store"`
}

// provider is a client which can also generate messages
type provider interface {
	chain.Client
	chain.Generator
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("LLM pipeline command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Register the built-in tools
	toolkit, err := builtinToolkit()
	cmd.FatalIfErrorf(err)
	cli.Globals.toolkit = toolkit

	// Run the command
	cmd.FatalIfErrorf(cmd.Run(&cli.Globals))
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// clients returns the configured provider clients
func (g *Globals) clients() ([]provider, error) {
	clientopts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		clientopts = append(clientopts, client.OptTrace(os.Stderr, g.Verbose))
	}

	var result []provider
	if g.AnthropicKey != "" {
		c, err := anthropic.New(g.AnthropicKey, clientopts...)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if g.OpenAIKey != "" {
		c, err := openai.New(g.OpenAIKey)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if len(result) == 0 {
		return nil, chain.ErrBadParameter.With("no provider configured, set ANTHROPIC_API_KEY or OPENAI_API_KEY")
	}
	return result, nil
}

// clientForModel finds the provider which owns the named model
func (g *Globals) clientForModel(ctx context.Context, name string) (provider, *schema.Model, error) {
	clients, err := g.clients()
	if err != nil {
		return nil, nil, err
	}
	for _, c := range clients {
		if model, err := c.GetModel(ctx, name); err == nil {
			return c, model, nil
		}
	}
	return nil, nil, chain.ErrNotFound.Withf("model %q", name)
}

func execName() string {
	name, err := os.Executable()
	if err != nil {
		return "chain"
	}
	return filepath.Base(name)
}
