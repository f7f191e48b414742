package prompt

import (
	"io"
	"os"

	// Packages
	chain "github.com/mutablelogic/go-chain"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// File is the on-disk representation of a chat template
type File struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Messages    []ChatMessage `yaml:"messages" json:"messages"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Read decodes a YAML prompt file into a chat template
func Read(r io.Reader) (*ChatTemplate, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, chain.ErrBadParameter.Withf("invalid prompt file: %v", err)
	}
	return FromMessages(file.Messages...)
}

// LoadFile reads a YAML prompt file from a path
func LoadFile(path string) (*ChatTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chain.ErrNotFound.Withf("%v", err)
	}
	defer f.Close()
	return Read(f)
}
