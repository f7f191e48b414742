package main

import (
	"encoding/json"
	"fmt"
	"os"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type RunToolCmd struct {
	Tool  string `arg:"" help:"Tool name"`
	Input string `arg:"" optional:"" help:"JSON input for the tool"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *RunToolCmd) Run(globals *Globals) error {
	input := cmd.Input
	if input == "" {
		input = "{}"
	}

	result, err := globals.toolkit.Run(globals.ctx, cmd.Tool, json.RawMessage(input))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
