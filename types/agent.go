// Package types holds the typed model of an agent configuration file.
package types

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/initializ/agentcheck/schemas"
)

// MaxNameLength is the longest agent name, in characters.
const MaxNameLength = 256

// Optional records whether a key was present in the document at all.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Nullable holds a value that may be an explicit null.
type Nullable[T any] struct {
	Null  bool
	Value T
}

// AgentConfig is the top-level agent configuration document.
type AgentConfig struct {
	Version     string
	Name        string
	Description *string
	Metadata    *Metadata
	ID          *string
	Model       Model
	// Instructions must be present but may be null.
	Instructions Optional[Nullable[string]]
	Tools        []Tool
}

// Metadata carries free-form descriptive fields.
type Metadata struct {
	Author string         `yaml:"author,omitempty"`
	Tag    string         `yaml:"tag,omitempty"`
	Extra  map[string]any `yaml:",inline"`
}

// Model identifies the model backing the agent.
type Model struct {
	ID      string        `yaml:"id"`
	Options *ModelOptions `yaml:"options,omitempty"`
}

// ModelOptions are sampling parameters, each in [0,1].
type ModelOptions struct {
	Temperature *float64 `yaml:"temperature,omitempty"`
	TopP        *float64 `yaml:"top_p,omitempty"`
}

// NewAgentConfig returns a minimal configuration with null instructions and no tools.
func NewAgentConfig(name, modelID string) *AgentConfig {
	return &AgentConfig{
		Version: schemas.SchemaVersion,
		Name:    name,
		Model:   Model{ID: modelID},
		Instructions: Optional[Nullable[string]]{
			Set:   true,
			Value: Nullable[string]{Null: true},
		},
	}
}

// SetInstructions sets the instructions; an empty string is stored as null.
func (c *AgentConfig) SetInstructions(s string) {
	c.Instructions = Optional[Nullable[string]]{
		Set:   true,
		Value: Nullable[string]{Null: s == "", Value: s},
	}
}

// HasInstructions reports whether the instructions are present, non-null and non-empty.
func (c *AgentConfig) HasInstructions() bool {
	return c.Instructions.Set && !c.Instructions.Value.Null && strings.TrimSpace(c.Instructions.Value.Value) != ""
}

type wireConfig struct {
	Version      string     `yaml:"version"`
	Name         string     `yaml:"name"`
	Description  *string    `yaml:"description,omitempty"`
	Metadata     *Metadata  `yaml:"metadata,omitempty"`
	ID           *string    `yaml:"id,omitempty"`
	Model        Model      `yaml:"model"`
	Instructions *yaml.Node `yaml:"instructions,omitempty"`
	Tools        []Tool     `yaml:"tools,omitempty"`
}

// MarshalYAML writes instructions as an explicit null when unset-to-null and
// omits the key only when it was never set.
func (c AgentConfig) MarshalYAML() (any, error) {
	w := wireConfig{
		Version:     c.Version,
		Name:        c.Name,
		Description: c.Description,
		Metadata:    c.Metadata,
		ID:          c.ID,
		Model:       c.Model,
		Tools:       c.Tools,
	}

	if c.Instructions.Set {
		n := &yaml.Node{Kind: yaml.ScalarNode}
		if c.Instructions.Value.Null {
			n.Tag = "!!null"
			n.Value = "null"
		} else {
			n.Tag = "!!str"
			n.Value = c.Instructions.Value.Value
			if strings.Contains(n.Value, "\n") {
				n.Style = yaml.LiteralStyle
			}
		}
		w.Instructions = n
	}
	return w, nil
}

// UnmarshalYAML decodes the document, keeping the absent/null distinction for
// instructions and dispatching each tool on its type.
func (c *AgentConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Version      string      `yaml:"version"`
		Name         string      `yaml:"name"`
		Description  *string     `yaml:"description"`
		Metadata     *Metadata   `yaml:"metadata"`
		ID           *string     `yaml:"id"`
		Model        Model       `yaml:"model"`
		Instructions yaml.Node   `yaml:"instructions"`
		Tools        []yaml.Node `yaml:"tools"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*c = AgentConfig{
		Version:     raw.Version,
		Name:        raw.Name,
		Description: raw.Description,
		Metadata:    raw.Metadata,
		ID:          raw.ID,
		Model:       raw.Model,
	}

	if raw.Instructions.Kind != 0 {
		c.Instructions.Set = true
		if raw.Instructions.ShortTag() == "!!null" {
			c.Instructions.Value.Null = true
		} else if err := raw.Instructions.Decode(&c.Instructions.Value.Value); err != nil {
			return fmt.Errorf("instructions: %w", err)
		}
	}

	for i := range raw.Tools {
		t, err := decodeTool(&raw.Tools[i])
		if err != nil {
			return fmt.Errorf("tools[%d]: %w", i, err)
		}
		c.Tools = append(c.Tools, t)
	}
	return nil
}

// ParseAgentConfig decodes YAML or JSON bytes into an AgentConfig. It does not
// enforce the schema; run the validator first for diagnostics.
func ParseAgentConfig(data []byte) (*AgentConfig, error) {
	var cfg AgentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing agent config: %w", err)
	}
	return &cfg, nil
}

// Marshal encodes cfg as YAML with two-space indentation.
func Marshal(cfg *AgentConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding agent config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding agent config: %w", err)
	}
	return buf.Bytes(), nil
}
