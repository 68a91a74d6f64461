package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/initializ/agentcheck/document"
	"github.com/initializ/agentcheck/schemas"
)

func validDoc() map[string]any {
	return map[string]any{
		"version":      "1.0.0",
		"name":         "Test Agent",
		"model":        map[string]any{"id": "gpt-4o"},
		"instructions": "Be helpful.",
	}
}

func withTools(doc map[string]any, tools ...any) map[string]any {
	doc["tools"] = tools
	return doc
}

func stringList(n int, prefix string) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%d", prefix, i)
	}
	return out
}

func findError(r *ValidationResult, path string, kind Kind) bool {
	for _, e := range r.Errors {
		if e.Path == path && e.Kind == kind {
			return true
		}
	}
	return false
}

func TestValidate_ValidDocument(t *testing.T) {
	r := Validate(validDoc())
	if !r.Valid || !r.IsValid() {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	if r.Errors == nil {
		t.Error("Errors should be an empty slice, not nil")
	}
}

func TestValidate_Sample(t *testing.T) {
	doc, err := document.Parse(schemas.SampleAgentYAML)
	if err != nil {
		t.Fatalf("parsing sample: %v", err)
	}
	r := ValidateDocument(doc)
	if !r.Valid {
		t.Fatalf("sample should be valid, got errors: %v", r.Errors)
	}
}

func TestValidate_RootNotObject(t *testing.T) {
	for _, doc := range []any{[]any{"a"}, "text", nil, int64(3), true} {
		r := Validate(doc)
		if r.Valid {
			t.Fatalf("expected invalid for root %v", doc)
		}
		if len(r.Errors) != 1 || r.Errors[0].Kind != KindStructural || r.Errors[0].Path != "" {
			t.Errorf("root %v: expected one structural error at root, got %v", doc, r.Errors)
		}
	}

	r := Validate([]any{})
	if !strings.Contains(r.Errors[0].Message, "expected object at root, found array") {
		t.Errorf("unexpected message: %s", r.Errors[0].Message)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	for _, key := range []string{"version", "name", "model", "instructions"} {
		doc := validDoc()
		delete(doc, key)
		r := Validate(doc)
		if r.Valid {
			t.Fatalf("expected invalid without %s", key)
		}
		if !findError(r, "/"+key, KindRequiredFieldMissing) {
			t.Errorf("expected required error for /%s, got %v", key, r.Errors)
		}
	}

	r := Validate(map[string]any{})
	if got := len(r.ErrorsOfKind(KindRequiredFieldMissing)); got != 4 {
		t.Errorf("expected 4 required errors for empty object, got %d: %v", got, r.Errors)
	}
	want := []string{"/version", "/name", "/model", "/instructions"}
	for i, e := range r.Errors {
		if e.Path != want[i] {
			t.Errorf("error %d: expected path %s, got %s", i, want[i], e.Path)
		}
	}
}

func TestValidate_InstructionsNullVersusAbsent(t *testing.T) {
	doc := validDoc()
	doc["instructions"] = nil
	if r := Validate(doc); !r.Valid {
		t.Fatalf("null instructions should be valid, got %v", r.Errors)
	}

	delete(doc, "instructions")
	r := Validate(doc)
	if !findError(r, "/instructions", KindRequiredFieldMissing) {
		t.Fatalf("absent instructions should be required error, got %v", r.Errors)
	}
	if !strings.Contains(r.Errors[0].Message, "missing") {
		t.Errorf("expected a missing-key message, got %q", r.Errors[0].Message)
	}

	doc["instructions"] = int64(5)
	r = Validate(doc)
	if !findError(r, "/instructions", KindStructural) {
		t.Errorf("numeric instructions should be structural error, got %v", r.Errors)
	}
}

func TestValidate_NullRequiredNonNullable(t *testing.T) {
	doc := validDoc()
	doc["name"] = nil
	r := Validate(doc)
	if !findError(r, "/name", KindStructural) {
		t.Fatalf("expected structural error for null name, got %v", r.Errors)
	}
	if !strings.Contains(r.Errors[0].Message, "found null") {
		t.Errorf("expected null to be named in message, got %q", r.Errors[0].Message)
	}
}

func TestValidate_Version(t *testing.T) {
	valid := validDoc()
	if r := Validate(valid); !r.Valid {
		t.Fatalf("1.0.0 should be valid, got %v", r.Errors)
	}

	for _, v := range []any{"1.0", "1.0.0.0", "1.0.1", "v1.0.0", ""} {
		doc := validDoc()
		doc["version"] = v
		r := Validate(doc)
		if !findError(r, "/version", KindConstraintViolation) {
			t.Errorf("version %q: expected constraint violation, got %v", v, r.Errors)
		}
	}

	doc := validDoc()
	doc["version"] = 1.0
	if r := Validate(doc); !findError(r, "/version", KindStructural) {
		t.Errorf("numeric version: expected structural error, got %v", r.Errors)
	}
}

func TestValidate_VersionFromYAML(t *testing.T) {
	d, err := document.Parse([]byte("version: 1.0\nname: a\nmodel: {id: m}\ninstructions: null\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := ValidateDocument(d)
	if !findError(r, "/version", KindStructural) {
		t.Fatalf("unquoted 1.0 should parse as a number and fail, got %v", r.Errors)
	}
	if r.Errors[0].Line != 1 {
		t.Errorf("expected line 1, got %d", r.Errors[0].Line)
	}
}

func TestValidate_Name(t *testing.T) {
	doc := validDoc()
	doc["name"] = strings.Repeat("a", 256)
	if r := Validate(doc); !r.Valid {
		t.Fatalf("256 characters should be valid, got %v", r.Errors)
	}

	doc["name"] = strings.Repeat("é", 256)
	if r := Validate(doc); !r.Valid {
		t.Fatalf("256 multi-byte characters should be valid, got %v", r.Errors)
	}

	doc["name"] = strings.Repeat("a", 257)
	if r := Validate(doc); !findError(r, "/name", KindConstraintViolation) {
		t.Errorf("257 characters: expected constraint violation, got %v", r.Errors)
	}

	doc["name"] = map[string]any{}
	if r := Validate(doc); !findError(r, "/name", KindStructural) {
		t.Errorf("object name: expected structural error, got %v", r.Errors)
	}
}

func TestValidate_AssistantID(t *testing.T) {
	tests := []struct {
		id    any
		valid bool
	}{
		{"", true},
		{nil, true},
		{"asst_" + strings.Repeat("a", 22), true},
		{"asst_" + strings.Repeat("Z9", 10), true},
		{"asst_" + strings.Repeat("x", 26), true},
		{"asst_ABC123", false},
		{"asst_" + strings.Repeat("x", 19), false},
		{"asst_" + strings.Repeat("x", 27), false},
		{"not_asst_prefix", false},
		{"asst_" + strings.Repeat("a", 21) + "-", false},
	}
	for _, tt := range tests {
		doc := validDoc()
		doc["id"] = tt.id
		r := Validate(doc)
		if r.Valid != tt.valid {
			t.Errorf("id %v: expected valid=%v, got errors %v", tt.id, tt.valid, r.Errors)
		}
		if !tt.valid && !findError(r, "/id", KindConstraintViolation) {
			t.Errorf("id %v: expected constraint violation, got %v", tt.id, r.Errors)
		}
	}

	doc := validDoc()
	doc["id"] = int64(7)
	if r := Validate(doc); !findError(r, "/id", KindStructural) {
		t.Errorf("numeric id: expected structural error, got %v", r.Errors)
	}
}

func TestValidate_ModelOptions(t *testing.T) {
	tests := []struct {
		value any
		valid bool
	}{
		{nil, true},
		{int64(0), true},
		{int64(1), true},
		{0.0, true},
		{1.0, true},
		{0.7, true},
		{1.5, false},
		{-0.1, false},
		{int64(2), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
		{math.NaN(), false},
	}
	for _, key := range []string{"temperature", "top_p"} {
		for _, tt := range tests {
			doc := validDoc()
			doc["model"] = map[string]any{
				"id":      "gpt-4o",
				"options": map[string]any{key: tt.value},
			}
			r := Validate(doc)
			if r.Valid != tt.valid {
				t.Errorf("%s=%v: expected valid=%v, got errors %v", key, tt.value, tt.valid, r.Errors)
			}
			if !tt.valid && !findError(r, "/model/options/"+key, KindConstraintViolation) {
				t.Errorf("%s=%v: expected constraint violation, got %v", key, tt.value, r.Errors)
			}
		}
	}

	doc := validDoc()
	doc["model"] = map[string]any{"id": "gpt-4o", "options": map[string]any{"temperature": "hot"}}
	if r := Validate(doc); !findError(r, "/model/options/temperature", KindStructural) {
		t.Errorf("string temperature: expected structural error, got %v", r.Errors)
	}
}

func TestValidate_ModelShape(t *testing.T) {
	doc := validDoc()
	doc["model"] = map[string]any{}
	if r := Validate(doc); !findError(r, "/model/id", KindRequiredFieldMissing) {
		t.Errorf("expected /model/id required, got %v", r.Errors)
	}

	doc["model"] = map[string]any{"id": "gpt-4o", "provider": "openai"}
	if r := Validate(doc); !findError(r, "/model/provider", KindUnknownField) {
		t.Errorf("expected unknown /model/provider, got %v", r.Errors)
	}

	doc["model"] = "gpt-4o"
	if r := Validate(doc); !findError(r, "/model", KindStructural) {
		t.Errorf("expected structural /model, got %v", r.Errors)
	}
}

func TestValidate_UnknownTopLevelField(t *testing.T) {
	doc := validDoc()
	doc["zeta"] = 1
	doc["alpha"] = 2
	r := Validate(doc)
	unknown := r.ErrorsOfKind(KindUnknownField)
	if len(unknown) != 2 {
		t.Fatalf("expected 2 unknown field errors, got %v", r.Errors)
	}
	if unknown[0].Path != "/alpha" || unknown[1].Path != "/zeta" {
		t.Errorf("unknown fields should be reported in sorted order, got %v", unknown)
	}
}

func TestValidate_MetadataIsOpen(t *testing.T) {
	doc := validDoc()
	doc["metadata"] = map[string]any{"author": "me", "tag": "x", "team": "core"}
	if r := Validate(doc); !r.Valid {
		t.Fatalf("extra metadata keys should be allowed, got %v", r.Errors)
	}

	doc["metadata"] = map[string]any{"author": int64(1)}
	if r := Validate(doc); !findError(r, "/metadata/author", KindStructural) {
		t.Errorf("expected structural /metadata/author, got %v", r.Errors)
	}
}

func TestValidate_Description(t *testing.T) {
	doc := validDoc()
	doc["description"] = nil
	if r := Validate(doc); !r.Valid {
		t.Fatalf("null description should be valid, got %v", r.Errors)
	}
	doc["description"] = []any{}
	if r := Validate(doc); !findError(r, "/description", KindStructural) {
		t.Errorf("expected structural /description, got %v", r.Errors)
	}
}

func TestValidate_CodeInterpreter(t *testing.T) {
	r := Validate(withTools(validDoc(), map[string]any{"type": "code_interpreter"}))
	if !findError(r, "/tools/0/options", KindRequiredFieldMissing) {
		t.Errorf("expected required options, got %v", r.Errors)
	}

	r = Validate(withTools(validDoc(), map[string]any{
		"type":    "code_interpreter",
		"options": map[string]any{"file_ids": []any{}},
	}))
	if !r.Valid {
		t.Errorf("empty file_ids should be valid, got %v", r.Errors)
	}

	r = Validate(withTools(validDoc(), map[string]any{
		"type":    "code_interpreter",
		"options": map[string]any{"file_ids": stringList(20, "file")},
	}))
	if !r.Valid {
		t.Errorf("20 file_ids should be valid, got %v", r.Errors)
	}

	r = Validate(withTools(validDoc(), map[string]any{
		"type":    "code_interpreter",
		"options": map[string]any{"file_ids": stringList(21, "file")},
	}))
	if !findError(r, "/tools/0/options/file_ids", KindConstraintViolation) {
		t.Errorf("21 file_ids: expected constraint violation, got %v", r.Errors)
	}

	r = Validate(withTools(validDoc(), map[string]any{
		"type":    "code_interpreter",
		"options": map[string]any{},
	}))
	if !findError(r, "/tools/0/options/file_ids", KindRequiredFieldMissing) {
		t.Errorf("expected required file_ids, got %v", r.Errors)
	}

	r = Validate(withTools(validDoc(), map[string]any{
		"type":    "code_interpreter",
		"options": map[string]any{"file_ids": []any{"ok", int64(3)}},
	}))
	if !findError(r, "/tools/0/options/file_ids/1", KindStructural) {
		t.Errorf("expected structural error on non-string file id, got %v", r.Errors)
	}
}

func TestValidate_BingGrounding(t *testing.T) {
	tool := func(conns []any) map[string]any {
		return map[string]any{
			"type":    "bing_grounding",
			"options": map[string]any{"tool_connections": conns},
		}
	}

	if r := Validate(withTools(validDoc(), tool([]any{"conn"}))); !r.Valid {
		t.Errorf("one connection should be valid, got %v", r.Errors)
	}
	if r := Validate(withTools(validDoc(), tool([]any{"a", "b"}))); !findError(r, "/tools/0/options/tool_connections", KindConstraintViolation) {
		t.Errorf("two connections: expected constraint violation, got %v", r.Errors)
	}
	if r := Validate(withTools(validDoc(), tool([]any{}))); !findError(r, "/tools/0/options/tool_connections", KindConstraintViolation) {
		t.Errorf("zero connections: expected constraint violation, got %v", r.Errors)
	}
}

func TestValidate_FileSearch(t *testing.T) {
	tool := func(ids []any) map[string]any {
		return map[string]any{
			"type":    "file_search",
			"options": map[string]any{"vector_store_ids": ids},
		}
	}
	if r := Validate(withTools(validDoc(), tool([]any{}))); !r.Valid {
		t.Errorf("zero vector stores should be valid, got %v", r.Errors)
	}
	if r := Validate(withTools(validDoc(), tool([]any{"vs_1"}))); !r.Valid {
		t.Errorf("one vector store should be valid, got %v", r.Errors)
	}
	if r := Validate(withTools(validDoc(), tool([]any{"vs_1", "vs_2"}))); !findError(r, "/tools/0/options/vector_store_ids", KindConstraintViolation) {
		t.Errorf("two vector stores: expected constraint violation, got %v", r.Errors)
	}
}

func TestValidate_OpenAPI(t *testing.T) {
	tool := map[string]any{
		"type": "openapi",
		"id":   "weather",
		"options": map[string]any{
			"specification": `{"openapi": "3.0.1"}`,
			"auth": map[string]any{
				"type":            "connection",
				"security_scheme": map[string]any{"connection_id": "c1"},
			},
		},
	}
	if r := Validate(withTools(validDoc(), tool)); !r.Valid {
		t.Fatalf("openapi tool with extra auth fields should be valid, got %v", r.Errors)
	}

	missing := map[string]any{"type": "openapi", "options": map[string]any{"auth": map[string]any{}}}
	r := Validate(withTools(validDoc(), missing))
	for _, path := range []string{"/tools/0/id", "/tools/0/options/specification", "/tools/0/options/auth/type"} {
		if !findError(r, path, KindRequiredFieldMissing) {
			t.Errorf("expected required error at %s, got %v", path, r.Errors)
		}
	}

	extra := map[string]any{
		"type": "openapi",
		"id":   "weather",
		"options": map[string]any{
			"specification": "{}",
			"auth":          map[string]any{"type": "anonymous"},
			"timeout":       int64(5),
		},
	}
	if r := Validate(withTools(validDoc(), extra)); !findError(r, "/tools/0/options/timeout", KindUnknownField) {
		t.Errorf("options are closed: expected unknown field, got %v", r.Errors)
	}
}

func TestValidate_NoMixedVariants(t *testing.T) {
	tool := map[string]any{
		"type":    "file_search",
		"id":      "weather",
		"options": map[string]any{"vector_store_ids": []any{}, "file_ids": []any{}},
	}
	r := Validate(withTools(validDoc(), tool))
	if !findError(r, "/tools/0/id", KindUnknownField) {
		t.Errorf("expected id to be unknown on file_search, got %v", r.Errors)
	}
	if !findError(r, "/tools/0/options/file_ids", KindUnknownField) {
		t.Errorf("expected file_ids to be unknown on file_search, got %v", r.Errors)
	}
}

func TestValidate_UnknownToolType(t *testing.T) {
	r := Validate(withTools(validDoc(), map[string]any{"type": "made_up_tool"}))
	if !findError(r, "/tools/0/type", KindUnknownVariant) {
		t.Fatalf("expected unknown variant, got %v", r.Errors)
	}
	if len(r.Errors) != 1 {
		t.Errorf("unknown variant should not produce shape errors, got %v", r.Errors)
	}

	r = Validate(withTools(validDoc(), map[string]any{"options": map[string]any{}}))
	if !findError(r, "/tools/0/type", KindRequiredFieldMissing) {
		t.Errorf("expected missing type, got %v", r.Errors)
	}

	r = Validate(withTools(validDoc(), map[string]any{"type": int64(1)}))
	if !findError(r, "/tools/0/type", KindStructural) {
		t.Errorf("expected structural type, got %v", r.Errors)
	}

	r = Validate(withTools(validDoc(), "code_interpreter"))
	if !findError(r, "/tools/0", KindStructural) {
		t.Errorf("expected structural tool entry, got %v", r.Errors)
	}

	doc := validDoc()
	doc["tools"] = map[string]any{}
	if r := Validate(doc); !findError(r, "/tools", KindStructural) {
		t.Errorf("expected structural tools, got %v", r.Errors)
	}
}

func TestValidate_AccumulatesAllErrors(t *testing.T) {
	doc := map[string]any{
		"version": "2.0.0",
		"name":    strings.Repeat("n", 300),
		"id":      "bad",
		"model":   map[string]any{"options": map[string]any{"temperature": 3.0}},
		"extra":   true,
		"tools": []any{
			map[string]any{"type": "made_up_tool"},
			map[string]any{"type": "code_interpreter"},
		},
	}
	r := Validate(doc)
	for _, want := range []struct {
		path string
		kind Kind
	}{
		{"/instructions", KindRequiredFieldMissing},
		{"/version", KindConstraintViolation},
		{"/name", KindConstraintViolation},
		{"/id", KindConstraintViolation},
		{"/model/id", KindRequiredFieldMissing},
		{"/model/options/temperature", KindConstraintViolation},
		{"/tools/0/type", KindUnknownVariant},
		{"/tools/1/options", KindRequiredFieldMissing},
		{"/extra", KindUnknownField},
	} {
		if !findError(r, want.path, want.kind) {
			t.Errorf("expected %s error at %s, got %v", want.kind, want.path, r.Errors)
		}
	}
	if len(r.Errors) != 9 {
		t.Errorf("expected 9 errors, got %d: %v", len(r.Errors), r.Errors)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	doc := withTools(validDoc(), map[string]any{"type": "x"}, map[string]any{"b": 1, "a": 2, "type": "file_search"})
	doc["z"], doc["y"], doc["x"] = 1, 2, 3
	first := Validate(doc)
	for i := 0; i < 20; i++ {
		again := Validate(doc)
		if fmt.Sprint(again.Errors) != fmt.Sprint(first.Errors) {
			t.Fatalf("run %d produced different errors:\n%v\n%v", i, first.Errors, again.Errors)
		}
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	d, err := document.Parse(schemas.SampleAgentYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r := ValidateDocument(d); !r.Valid {
		t.Fatalf("sample invalid: %v", r.Errors)
	}

	yamlData, err := yaml.Marshal(d.Root)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	again, err := document.Parse(yamlData)
	if err != nil {
		t.Fatalf("re-parse yaml: %v", err)
	}
	if r := ValidateDocument(again); !r.Valid {
		t.Errorf("yaml round trip invalid: %v", r.Errors)
	}

	jsonData, err := json.Marshal(d.Root)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	again, err = document.Parse(jsonData)
	if err != nil {
		t.Fatalf("re-parse json: %v", err)
	}
	if r := ValidateDocument(again); !r.Valid {
		t.Errorf("json round trip invalid: %v", r.Errors)
	}
}

func TestValidateDocument_Positions(t *testing.T) {
	d, err := document.Parse([]byte(`version: 1.0.0
name: demo
model:
  id: gpt-4o
  options:
    temperature: 1.5
instructions: null
tools:
  - type: made_up_tool
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := ValidateDocument(d)
	if len(r.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", r.Errors)
	}
	if r.Errors[0].Path != "/model/options/temperature" || r.Errors[0].Line != 6 {
		t.Errorf("unexpected first error: %+v", r.Errors[0])
	}
	if r.Errors[1].Path != "/tools/0/type" || r.Errors[1].Line != 9 {
		t.Errorf("unexpected second error: %+v", r.Errors[1])
	}
}

func TestValidate_Concurrent(t *testing.T) {
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			r := Validate(withTools(validDoc(), map[string]any{"type": "made_up_tool"}))
			done <- len(r.Errors) == 1
		}()
	}
	for i := 0; i < 8; i++ {
		if !<-done {
			t.Error("concurrent validation produced an unexpected result")
		}
	}
}

func TestKind_Text(t *testing.T) {
	for _, k := range []Kind{KindStructural, KindRequiredFieldMissing, KindUnknownField, KindConstraintViolation, KindUnknownVariant} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", text, err)
		}
		if back != k {
			t.Errorf("kind %s decoded as %s", k, back)
		}
	}
	var k Kind
	if err := k.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected error for unknown kind name")
	}
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Path: "", Message: "expected object at root, found array", Kind: KindStructural}
	if got := e.Error(); got != "(root): expected object at root, found array" {
		t.Errorf("unexpected: %s", got)
	}
	e = ValidationError{Path: "/name", Message: "m", Line: 2, Column: 1}
	if got := e.Error(); got != "2:1: /name: m" {
		t.Errorf("unexpected: %s", got)
	}
}
