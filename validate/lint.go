package validate

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/initializ/agentcheck/types"
)

// singletonTools may appear at most once without a warning.
var singletonTools = map[types.ToolType]bool{
	types.ToolBingGrounding:   true,
	types.ToolCodeInterpreter: true,
	types.ToolFileSearch:      true,
}

// Lint returns advisory warnings for a document tree. It only inspects
// well-shaped parts of the tree; shape problems are the validator's job.
func Lint(doc any) []string {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil
	}

	var warnings []string

	if instr, present := root["instructions"]; present {
		if s, isStr := instr.(string); instr == nil || (isStr && strings.TrimSpace(s) == "") {
			warnings = append(warnings, "agent has no instructions")
		}
	}

	if id, ok := root["id"].(string); ok && id == "" {
		warnings = append(warnings, "id is empty; a new assistant will be created")
	}

	tools, _ := root["tools"].([]any)
	seenType := make(map[types.ToolType]int)
	seenAPI := make(map[string]int)
	for i, item := range tools {
		tool, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s, _ := tool["type"].(string)
		tt := types.ToolType(s)
		if !tt.Valid() {
			continue
		}

		if singletonTools[tt] {
			if first, dup := seenType[tt]; dup {
				warnings = append(warnings, fmt.Sprintf("tools[%d]: %s is already configured at tools[%d]", i, tt, first))
			} else {
				seenType[tt] = i
			}
		}

		if tt != types.ToolOpenAPI {
			continue
		}
		if id, ok := tool["id"].(string); ok {
			if first, dup := seenAPI[id]; dup {
				warnings = append(warnings, fmt.Sprintf("tools[%d]: openapi id %q is already used by tools[%d]", i, id, first))
			} else {
				seenAPI[id] = i
			}
		}
		opts, _ := tool["options"].(map[string]any)
		if spec, ok := opts["specification"].(string); ok {
			if w := lintOpenAPISpecification(spec); w != "" {
				warnings = append(warnings, fmt.Sprintf("tools[%d]: %s", i, w))
			}
		}
	}

	return warnings
}

// lintOpenAPISpecification checks the serialized document parses and looks
// like an OpenAPI or Swagger document.
func lintOpenAPISpecification(spec string) string {
	if strings.TrimSpace(spec) == "" {
		return "openapi specification is empty"
	}
	var m map[string]any
	if err := yaml.Unmarshal([]byte(spec), &m); err != nil {
		return fmt.Sprintf("openapi specification does not parse: %v", err)
	}
	if _, ok := m["openapi"]; ok {
		return ""
	}
	if _, ok := m["swagger"]; ok {
		return ""
	}
	return "openapi specification has no openapi or swagger version field"
}
