package prompt

import (
	"context"
	"strings"
	"text/template"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	opt "github.com/mutablelogic/go-chain/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Template is a single text template rendered from a map of values.
// It uses Go template syntax; referencing a missing value is an error.
type Template struct {
	text string
	tmpl *template.Template
}

var _ chain.Runnable = (*Template)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New parses a text template
func New(text string) (*Template, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, chain.ErrBadParameter.Withf("invalid template: %v", err)
	}
	return &Template{text: text, tmpl: tmpl}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render the template with the given values
func (t *Template) Render(values map[string]any) (string, error) {
	var buf strings.Builder
	if err := t.tmpl.Execute(&buf, values); err != nil {
		return "", chain.ErrBadParameter.Withf("render failed: %v", err)
	}
	return buf.String(), nil
}

// Invoke renders the template as a pipeline stage. The input must be a
// map of template values; the output is the rendered string.
func (t *Template) Invoke(_ context.Context, input any, _ ...opt.Opt) (any, error) {
	values, ok := input.(map[string]any)
	if !ok {
		return nil, chain.ErrBadParameter.Withf("template requires a map input, got %T", input)
	}
	return t.Render(values)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t *Template) String() string {
	return t.text
}
