// Package validate checks agent configuration documents against the agent
// configuration schema and reports every violation it finds.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/initializ/agentcheck/document"
	"github.com/initializ/agentcheck/schemas"
	"github.com/initializ/agentcheck/types"
)

var assistantIDPattern = regexp.MustCompile(`^asst_[a-zA-Z0-9]{20,26}$`)

// field is one declared property of an object node.
type field struct {
	name     string
	required bool
	check    func(w *walker, path string, v any)
}

var agentFields = []field{
	{name: "version", required: true, check: checkVersion},
	{name: "name", required: true, check: checkName},
	{name: "description", check: nullableString},
	{name: "metadata", check: checkMetadata},
	{name: "id", check: checkAssistantID},
	{name: "model", required: true, check: checkModel},
	{name: "instructions", required: true, check: nullableString},
	{name: "tools", check: checkTools},
}

// Validate checks a parsed document tree and returns every violation found.
// It never panics on malformed input and holds no state between calls.
func Validate(doc any) *ValidationResult {
	w := &walker{}
	if _, ok := doc.(map[string]any); !ok {
		w.add(KindStructural, "", "expected object at root, found %s", describe(doc))
	} else {
		w.object("", doc, true, agentFields)
	}

	r := &ValidationResult{Errors: w.errs}
	if r.Errors == nil {
		r.Errors = []ValidationError{}
	}
	r.Warnings = Lint(doc)
	r.Valid = r.IsValid()
	return r
}

// ValidateDocument validates d and annotates each error with the source
// position of the node it refers to.
func ValidateDocument(d *document.Document) *ValidationResult {
	return annotate(d, Validate(d.Root))
}

func annotate(d *document.Document, r *ValidationResult) *ValidationResult {
	for i := range r.Errors {
		if pos, ok := d.Position(r.Errors[i].Path); ok {
			r.Errors[i].Line = pos.Line
			r.Errors[i].Column = pos.Column
		}
	}
	return r
}

type walker struct {
	errs []ValidationError
}

func (w *walker) add(kind Kind, path, format string, args ...any) {
	w.errs = append(w.errs, ValidationError{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Kind:    kind,
	})
}

func (w *walker) mismatch(path, want string, v any) {
	w.add(KindStructural, path, "expected %s, found %s", want, describe(v))
}

// object checks v is an object, reports missing required keys in declaration
// order, checks each declared key, then reports undeclared keys in sorted
// order when closed is set.
func (w *walker) object(path string, v any, closed bool, fields []field) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		w.mismatch(path, "object", v)
		return nil, false
	}

	for _, f := range fields {
		if !f.required {
			continue
		}
		if _, present := m[f.name]; !present {
			w.add(KindRequiredFieldMissing, document.Pointer(path, f.name), "required field %q is missing", f.name)
		}
	}

	for _, f := range fields {
		val, present := m[f.name]
		if !present || f.check == nil {
			continue
		}
		f.check(w, document.Pointer(path, f.name), val)
	}

	if closed {
		declared := make(map[string]bool, len(fields))
		for _, f := range fields {
			declared[f.name] = true
		}
		var unknown []string
		for k := range m {
			if !declared[k] {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		for _, k := range unknown {
			w.add(KindUnknownField, document.Pointer(path, k), "unknown field %q", k)
		}
	}
	return m, true
}

func checkVersion(w *walker, path string, v any) {
	s, ok := v.(string)
	if !ok {
		w.mismatch(path, "string", v)
		return
	}
	if s != schemas.SchemaVersion {
		w.add(KindConstraintViolation, path, "version must be %q, found %q", schemas.SchemaVersion, s)
	}
}

func checkName(w *walker, path string, v any) {
	s, ok := v.(string)
	if !ok {
		w.mismatch(path, "string", v)
		return
	}
	if n := utf8.RuneCountInString(s); n > types.MaxNameLength {
		w.add(KindConstraintViolation, path, "name is %d characters long, maximum is %d", n, types.MaxNameLength)
	}
}

func checkString(w *walker, path string, v any) {
	if _, ok := v.(string); !ok {
		w.mismatch(path, "string", v)
	}
}

func nullableString(w *walker, path string, v any) {
	if v == nil {
		return
	}
	if _, ok := v.(string); !ok {
		w.mismatch(path, "string or null", v)
	}
}

func checkMetadata(w *walker, path string, v any) {
	w.object(path, v, false, []field{
		{name: "author", check: checkString},
		{name: "tag", check: checkString},
	})
}

func checkAssistantID(w *walker, path string, v any) {
	if v == nil {
		return
	}
	s, ok := v.(string)
	if !ok {
		w.mismatch(path, "string or null", v)
		return
	}
	if s != "" && !assistantIDPattern.MatchString(s) {
		w.add(KindConstraintViolation, path, "id %q must be empty or match %s", s, assistantIDPattern.String())
	}
}

func checkModel(w *walker, path string, v any) {
	w.object(path, v, true, []field{
		{name: "id", required: true, check: checkString},
		{name: "options", check: checkModelOptions},
	})
}

func checkModelOptions(w *walker, path string, v any) {
	w.object(path, v, true, []field{
		{name: "temperature", check: unitInterval},
		{name: "top_p", check: unitInterval},
	})
}

// unitInterval accepts null or a number in [0,1].
func unitInterval(w *walker, path string, v any) {
	if v == nil {
		return
	}
	f, ok := number(v)
	if !ok {
		w.mismatch(path, "number or null", v)
		return
	}
	if !(f >= 0 && f <= 1) {
		w.add(KindConstraintViolation, path, "%s must be between 0 and 1, found %v", lastToken(path), v)
	}
}

// stringArray returns a check for an array of strings with min..max items.
func stringArray(minItems, maxItems int) func(w *walker, path string, v any) {
	return func(w *walker, path string, v any) {
		arr, ok := v.([]any)
		if !ok {
			w.mismatch(path, "array", v)
			return
		}
		if len(arr) < minItems {
			w.add(KindConstraintViolation, path, "%s has %d items, minimum is %d", lastToken(path), len(arr), minItems)
		}
		if len(arr) > maxItems {
			w.add(KindConstraintViolation, path, "%s has %d items, maximum is %d", lastToken(path), len(arr), maxItems)
		}
		for i, item := range arr {
			checkString(w, document.Index(path, i), item)
		}
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if _, ok := number(v); ok {
		return "number"
	}
	return fmt.Sprintf("unsupported value of type %T", v)
}

func lastToken(path string) string {
	tok := path[strings.LastIndexByte(path, '/')+1:]
	tok = strings.ReplaceAll(tok, "~1", "/")
	return strings.ReplaceAll(tok, "~0", "~")
}
