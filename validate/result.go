package validate

import (
	"fmt"
)

// Kind classifies a validation error.
type Kind int

const (
	// KindStructural is a node of the wrong kind, e.g. a string where an object is expected.
	KindStructural Kind = iota
	// KindRequiredFieldMissing is a mandated key absent from its object.
	KindRequiredFieldMissing
	// KindUnknownField is an undeclared key in a closed object.
	KindUnknownField
	// KindConstraintViolation is a well-typed value outside its declared bounds.
	KindConstraintViolation
	// KindUnknownVariant is a tool type outside the known set.
	KindUnknownVariant
)

var kindNames = map[Kind]string{
	KindStructural:           "structural",
	KindRequiredFieldMissing: "required",
	KindUnknownField:         "unknown_field",
	KindConstraintViolation:  "constraint",
	KindUnknownVariant:       "unknown_variant",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown validation error kind %q", text)
}

// ValidationError is a single violation. Path is a JSON pointer to the
// offending node; Line and Column are set only when the source text is known.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// DisplayPath returns Path, or "(root)" for the document root.
func (e ValidationError) DisplayPath() string {
	if e.Path == "" {
		return "(root)"
	}
	return e.Path
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.DisplayPath(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.DisplayPath(), e.Message)
}

// ValidationResult holds every violation found in a document plus advisory
// warnings. Warnings never affect Valid.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []string          `json:"warnings,omitempty"`
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ErrorsOfKind returns the errors of kind k in report order.
func (r *ValidationResult) ErrorsOfKind(k Kind) []ValidationError {
	var out []ValidationError
	for _, e := range r.Errors {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
