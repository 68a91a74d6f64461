package validate

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/initializ/agentcheck/document"
	"github.com/initializ/agentcheck/schemas"
	"github.com/initializ/agentcheck/types"
)

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(schemas.AgentConfigV1Schema)
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// CheckSchema reports whether the embedded schema compiles. A schema that
// does not compile is the only fatal condition in this package.
func CheckSchema() error {
	if _, err := getSchema(); err != nil {
		return fmt.Errorf("compiling agent config schema: %w", err)
	}
	return nil
}

// ValidateWithSchema validates a document tree with the general JSON Schema
// engine and maps its findings onto the same error taxonomy as Validate.
// It fails only when the schema cannot be compiled or the tree encoded.
func ValidateWithSchema(doc any) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling agent config schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(finite(doc)))
	if err != nil {
		return nil, fmt.Errorf("validating agent config: %w", err)
	}

	var mapped []ValidationError
	unknownTools := make(map[string]bool)
	for _, e := range res.Errors() {
		ve, ok := fromSchemaError(e)
		if !ok {
			continue
		}
		if ve.Kind == KindUnknownVariant {
			unknownTools[strings.TrimSuffix(ve.Path, "/type")] = true
		}
		mapped = append(mapped, ve)
	}

	r := &ValidationResult{Errors: []ValidationError{}}
	for _, ve := range mapped {
		if ve.Kind != KindUnknownVariant && underTool(ve.Path, unknownTools) {
			continue
		}
		r.Errors = append(r.Errors, ve)
	}
	sort.SliceStable(r.Errors, func(i, j int) bool {
		if r.Errors[i].Path != r.Errors[j].Path {
			return r.Errors[i].Path < r.Errors[j].Path
		}
		return r.Errors[i].Message < r.Errors[j].Message
	})
	r.Warnings = Lint(doc)
	r.Valid = r.IsValid()
	return r, nil
}

// underTool reports whether path lies inside one of the given tool objects.
func underTool(path string, tools map[string]bool) bool {
	for tool := range tools {
		if path == tool || strings.HasPrefix(path, tool+"/") {
			return true
		}
	}
	return false
}

// ValidateDocumentWithSchema is ValidateWithSchema with source positions.
func ValidateDocumentWithSchema(d *document.Document) (*ValidationResult, error) {
	r, err := ValidateWithSchema(d.Root)
	if err != nil {
		return nil, err
	}
	return annotate(d, r), nil
}

// fromSchemaError maps one engine finding. It returns false for a failed
// oneOf over a tool whose type is known or missing: the engine also reports
// the errors of the closest variant, which carry the detail.
func fromSchemaError(e gojsonschema.ResultError) (ValidationError, bool) {
	path := schemaPointer(e.Context())
	kind := KindConstraintViolation
	msg := e.Description()

	switch e.Type() {
	case "required":
		kind = KindRequiredFieldMissing
		path = document.Pointer(path, fmt.Sprint(e.Details()["property"]))
	case "additional_property_not_allowed":
		kind = KindUnknownField
		path = document.Pointer(path, fmt.Sprint(e.Details()["property"]))
	case "invalid_type":
		kind = KindStructural
	case "number_one_of", "number_any_of":
		tool, _ := e.Value().(map[string]any)
		name, ok := tool["type"].(string)
		if !ok || types.ToolType(name).Valid() {
			return ValidationError{}, false
		}
		kind = KindUnknownVariant
		path = document.Pointer(path, "type")
		msg = fmt.Sprintf("unknown tool type %q (expected one of %s)", name, knownToolTypes())
	}

	return ValidationError{Path: path, Message: msg, Kind: kind}, true
}

// finite copies doc with every infinite or NaN number replaced by the
// largest finite number of the same sign (NaN counts as positive). The
// engine encodes the tree as JSON, which has no non-finite numbers, and the
// replacement still fails every range check a non-finite value fails.
func finite(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = finite(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = finite(x)
		}
		return out
	case float64:
		return finiteFloat(t)
	case float32:
		return finiteFloat(float64(t))
	}
	return v
}

func finiteFloat(f float64) float64 {
	switch {
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	case math.IsInf(f, 1), math.IsNaN(f):
		return math.MaxFloat64
	}
	return f
}

const schemaRoot = "(root)"

// schemaPointer converts a gojsonschema context such as
// "(root).model.options" into a JSON pointer.
func schemaPointer(ctx *gojsonschema.JsonContext) string {
	if ctx == nil {
		return ""
	}
	s := strings.TrimPrefix(ctx.String("\x00"), schemaRoot)
	if s == "" {
		return ""
	}
	path := ""
	for _, tok := range strings.Split(strings.TrimPrefix(s, "\x00"), "\x00") {
		path = document.Pointer(path, tok)
	}
	return path
}

// Disagreements compares the two engines' verdicts. It lists the other
// engine's errors when only one of them rejects the document.
func Disagreements(builtin, schema *ValidationResult) []string {
	var out []string
	switch {
	case builtin.Valid && !schema.Valid:
		for _, e := range schema.Errors {
			out = append(out, "json schema engine: "+e.Error())
		}
	case !builtin.Valid && schema.Valid:
		for _, e := range builtin.Errors {
			out = append(out, "builtin engine: "+e.Error())
		}
	}
	return out
}
