package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ListModelsCmd struct {
	Provider string `help:"Only return models from a specific provider"`
}

type ListToolsCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ListModelsCmd) Run(globals *Globals) error {
	clients, err := globals.clients()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("| Provider | Model | Description |\n")
	sb.WriteString("|---|---|---|\n")
	for _, client := range clients {
		if cmd.Provider != "" && client.Name() != cmd.Provider {
			continue
		}
		models, err := client.ListModels(globals.ctx)
		if err != nil {
			return err
		}
		sort.Slice(models, func(i, j int) bool {
			return models[i].Name < models[j].Name
		})
		for _, model := range models {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", client.Name(), model.Name, model.Description)
		}
	}
	return render(os.Stdout, sb.String())
}

func (*ListToolsCmd) Run(globals *Globals) error {
	var sb strings.Builder
	sb.WriteString("| Tool | Description |\n")
	sb.WriteString("|---|---|\n")
	for _, t := range globals.toolkit.Tools() {
		fmt.Fprintf(&sb, "| %s | %s |\n", t.Name(), t.Description())
	}
	return render(os.Stdout, sb.String())
}
