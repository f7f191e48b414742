package main

import (
	"fmt"
	"io"
	"os"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	term "golang.org/x/term"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const defaultWidth = 80

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// render writes markdown to the writer, styled and word-wrapped to the
// terminal width. Falls back to plain output when not a terminal.
func render(w io.Writer, markdown string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		_, err := fmt.Fprintln(w, markdown)
		return err
	}

	width := defaultWidth
	if tw, _, err := term.GetSize(fd); err == nil && tw > 0 {
		width = tw
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
