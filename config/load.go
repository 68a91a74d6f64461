// Package config loads agent configuration files from disk.
package config

import (
	"fmt"
	"os"

	"github.com/initializ/agentcheck/document"
	"github.com/initializ/agentcheck/types"
)

// LoadDocument reads and parses an agent configuration file from the given path.
// Read failures are wrapped; parse failures keep their *document.ParseError.
func LoadDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent config %s: %w", path, err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadAgentConfig reads an agent configuration file into the typed model.
// It does not validate; callers validate the document first.
func LoadAgentConfig(path string) (*types.AgentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent config %s: %w", path, err)
	}
	cfg, err := types.ParseAgentConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
