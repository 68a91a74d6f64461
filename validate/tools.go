package validate

import (
	"strings"

	"github.com/initializ/agentcheck/document"
	"github.com/initializ/agentcheck/types"
)

var toolTypeField = field{name: "type", required: true}

// toolFields declares the closed shape of each tool variant.
var toolFields = map[types.ToolType][]field{
	types.ToolBingGrounding: {
		toolTypeField,
		{name: "options", required: true, check: closedOptions(
			field{name: "tool_connections", required: true, check: stringArray(1, types.MaxToolConnections)},
		)},
	},
	types.ToolCodeInterpreter: {
		toolTypeField,
		{name: "options", required: true, check: closedOptions(
			field{name: "file_ids", required: true, check: stringArray(0, types.MaxFileIDs)},
		)},
	},
	types.ToolOpenAPI: {
		toolTypeField,
		{name: "id", required: true, check: checkString},
		{name: "options", required: true, check: closedOptions(
			field{name: "specification", required: true, check: checkString},
			field{name: "auth", required: true, check: checkOpenAPIAuth},
		)},
	},
	types.ToolFileSearch: {
		toolTypeField,
		{name: "options", required: true, check: closedOptions(
			field{name: "vector_store_ids", required: true, check: stringArray(0, types.MaxVectorStoreIDs)},
		)},
	},
}

func closedOptions(fields ...field) func(w *walker, path string, v any) {
	return func(w *walker, path string, v any) {
		w.object(path, v, true, fields)
	}
}

// checkOpenAPIAuth leaves auth open so scheme-specific fields pass through.
func checkOpenAPIAuth(w *walker, path string, v any) {
	w.object(path, v, false, []field{
		{name: "type", required: true, check: checkString},
	})
}

func checkTools(w *walker, path string, v any) {
	arr, ok := v.([]any)
	if !ok {
		w.mismatch(path, "array", v)
		return
	}
	for i, item := range arr {
		checkTool(w, document.Index(path, i), item)
	}
}

// checkTool selects the variant from the type discriminator and checks the
// tool against that variant only.
func checkTool(w *walker, path string, v any) {
	m, ok := v.(map[string]any)
	if !ok {
		w.mismatch(path, "object", v)
		return
	}

	typePath := document.Pointer(path, "type")
	raw, present := m["type"]
	if !present {
		w.add(KindRequiredFieldMissing, typePath, "required field %q is missing", "type")
		return
	}
	s, ok := raw.(string)
	if !ok {
		w.mismatch(typePath, "string", raw)
		return
	}

	fields, known := toolFields[types.ToolType(s)]
	if !known {
		w.add(KindUnknownVariant, typePath, "unknown tool type %q (expected one of %s)", s, knownToolTypes())
		return
	}
	w.object(path, m, true, fields)
}

func knownToolTypes() string {
	names := make([]string, 0, len(types.ToolTypes()))
	for _, t := range types.ToolTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
