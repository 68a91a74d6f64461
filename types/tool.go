package types

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownToolType is returned when a tool's type is not one of the known variants.
var ErrUnknownToolType = errors.New("unknown tool type")

// ToolType discriminates the Tool variants.
type ToolType string

const (
	ToolBingGrounding   ToolType = "bing_grounding"
	ToolCodeInterpreter ToolType = "code_interpreter"
	ToolOpenAPI         ToolType = "openapi"
	ToolFileSearch      ToolType = "file_search"
)

// Array bounds for tool options.
const (
	MaxToolConnections = 1
	MaxFileIDs         = 20
	MaxVectorStoreIDs  = 1
)

// ToolTypes returns every known tool type in schema order.
func ToolTypes() []ToolType {
	return []ToolType{ToolBingGrounding, ToolCodeInterpreter, ToolOpenAPI, ToolFileSearch}
}

// Valid reports whether t names a known tool variant.
func (t ToolType) Valid() bool {
	switch t {
	case ToolBingGrounding, ToolCodeInterpreter, ToolOpenAPI, ToolFileSearch:
		return true
	default:
		return false
	}
}

// Tool is one of BingGroundingTool, CodeInterpreterTool, OpenAPITool or
// FileSearchTool. The set is closed.
type Tool interface {
	ToolType() ToolType
	isTool()
}

// BingGroundingTool grounds answers in web search results.
type BingGroundingTool struct {
	Options BingGroundingOptions `yaml:"options"`
}

type BingGroundingOptions struct {
	ToolConnections []string `yaml:"tool_connections"`
}

// CodeInterpreterTool runs code over the attached files.
type CodeInterpreterTool struct {
	Options CodeInterpreterOptions `yaml:"options"`
}

type CodeInterpreterOptions struct {
	FileIDs []string `yaml:"file_ids"`
}

// OpenAPITool calls an external API described by an OpenAPI document.
type OpenAPITool struct {
	ID      string         `yaml:"id"`
	Options OpenAPIOptions `yaml:"options"`
}

type OpenAPIOptions struct {
	// Specification holds the serialized OpenAPI document.
	Specification string      `yaml:"specification"`
	Auth          OpenAPIAuth `yaml:"auth"`
}

// OpenAPIAuth requires a type; scheme-specific fields are kept in Extra.
type OpenAPIAuth struct {
	Type  string         `yaml:"type"`
	Extra map[string]any `yaml:",inline"`
}

// FileSearchTool searches a vector store.
type FileSearchTool struct {
	Options FileSearchOptions `yaml:"options"`
}

type FileSearchOptions struct {
	VectorStoreIDs []string `yaml:"vector_store_ids"`
}

func (BingGroundingTool) ToolType() ToolType   { return ToolBingGrounding }
func (CodeInterpreterTool) ToolType() ToolType { return ToolCodeInterpreter }
func (OpenAPITool) ToolType() ToolType         { return ToolOpenAPI }
func (FileSearchTool) ToolType() ToolType      { return ToolFileSearch }

func (BingGroundingTool) isTool()   {}
func (CodeInterpreterTool) isTool() {}
func (OpenAPITool) isTool()         {}
func (FileSearchTool) isTool()      {}

// MarshalYAML emits the type discriminator ahead of the options.
func (t BingGroundingTool) MarshalYAML() (any, error) {
	return struct {
		Type    ToolType             `yaml:"type"`
		Options BingGroundingOptions `yaml:"options"`
	}{t.ToolType(), BingGroundingOptions{ToolConnections: nonNil(t.Options.ToolConnections)}}, nil
}

func (t CodeInterpreterTool) MarshalYAML() (any, error) {
	return struct {
		Type    ToolType               `yaml:"type"`
		Options CodeInterpreterOptions `yaml:"options"`
	}{t.ToolType(), CodeInterpreterOptions{FileIDs: nonNil(t.Options.FileIDs)}}, nil
}

func (t OpenAPITool) MarshalYAML() (any, error) {
	return struct {
		Type    ToolType       `yaml:"type"`
		ID      string         `yaml:"id"`
		Options OpenAPIOptions `yaml:"options"`
	}{t.ToolType(), t.ID, t.Options}, nil
}

func (t FileSearchTool) MarshalYAML() (any, error) {
	return struct {
		Type    ToolType          `yaml:"type"`
		Options FileSearchOptions `yaml:"options"`
	}{t.ToolType(), FileSearchOptions{VectorStoreIDs: nonNil(t.Options.VectorStoreIDs)}}, nil
}

// decodeTool picks the variant named by the node's type field and decodes into it.
func decodeTool(n *yaml.Node) (Tool, error) {
	var head struct {
		Type ToolType `yaml:"type"`
	}
	if err := n.Decode(&head); err != nil {
		return nil, err
	}

	switch head.Type {
	case ToolBingGrounding:
		var t BingGroundingTool
		err := n.Decode(&t)
		return t, err
	case ToolCodeInterpreter:
		var t CodeInterpreterTool
		err := n.Decode(&t)
		return t, err
	case ToolOpenAPI:
		var t OpenAPITool
		err := n.Decode(&t)
		return t, err
	case ToolFileSearch:
		var t FileSearchTool
		err := n.Decode(&t)
		return t, err
	}
	return nil, fmt.Errorf("line %d: %w %q", n.Line, ErrUnknownToolType, head.Type)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
