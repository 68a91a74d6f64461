package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/initializ/agentcheck/validate"
)

func invalidResult() *validate.ValidationResult {
	return &validate.ValidationResult{
		Valid: false,
		Errors: []validate.ValidationError{
			{Path: "", Message: `required field "name" is missing`, Kind: validate.KindRequiredFieldMissing},
			{Path: "/model/options/temperature", Message: "temperature must be between 0 and 1, found 1.5", Kind: validate.KindConstraintViolation, Line: 7, Column: 18},
		},
		Warnings: []string{"agent has no instructions"},
	}
}

func TestRenderReport_Valid(t *testing.T) {
	r := FileReport{Path: "agent.yaml", Result: &validate.ValidationResult{Valid: true}}
	out := RenderReport(PlainStyleSet(), r, false)
	assert.Equal(t, "✓ agent.yaml valid\n", out)
}

func TestRenderReport_Errors(t *testing.T) {
	r := FileReport{Path: "agent.yaml", Result: invalidResult()}
	out := RenderReport(PlainStyleSet(), r, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "✗ agent.yaml 2 errors, 1 warning", lines[0])
	assert.Contains(t, lines[1], "(root)")
	assert.Contains(t, lines[1], "[required]")
	assert.Contains(t, lines[2], "7:18 /model/options/temperature")
	assert.Equal(t, "  WARNING: agent has no instructions", lines[3])
}

func TestRenderReport_StrictWarnings(t *testing.T) {
	r := FileReport{
		Path:   "agent.yaml",
		Result: &validate.ValidationResult{Valid: true, Warnings: []string{"id is empty; a new assistant will be created"}},
	}
	assert.False(t, r.Failed(false))
	assert.True(t, r.Failed(true))

	out := RenderReport(PlainStyleSet(), r, true)
	assert.Contains(t, out, "✗ agent.yaml 0 errors, 1 warning")
	assert.Contains(t, out, "ERROR (strict): id is empty")
}

func TestRenderReport_Disagreements(t *testing.T) {
	r := FileReport{
		Path:          "agent.yaml",
		Result:        &validate.ValidationResult{Valid: true},
		Disagreements: []string{"json schema engine: name: String length must be less than or equal to 256"},
	}
	assert.True(t, r.Failed(false))
	assert.Contains(t, RenderReport(PlainStyleSet(), r, false), "engines disagree: json schema engine")
}

func TestRenderTotals(t *testing.T) {
	ok := FileReport{Path: "a.yaml", Result: &validate.ValidationResult{Valid: true}}
	bad := FileReport{Path: "b.yaml", Result: invalidResult()}

	assert.Equal(t, "Validation passed: 1 file checked.\n", RenderTotals(PlainStyleSet(), []FileReport{ok}, false))
	assert.Equal(t, "Validation failed: 1 of 2 files invalid.\n", RenderTotals(PlainStyleSet(), []FileReport{ok, bad}, false))
}

func TestRenderReport_LoadError(t *testing.T) {
	r := FileReport{Path: "missing.yaml", Err: errors.New("reading agent config missing.yaml: no such file")}
	assert.True(t, r.Failed(false))
	assert.Equal(t, "✗ missing.yaml\n  ERROR: reading agent config missing.yaml: no such file\n", RenderReport(PlainStyleSet(), r, false))
}

func TestRenderReport_EngineErrorKeepsResult(t *testing.T) {
	r := FileReport{Path: "agent.yaml", Result: invalidResult(), Err: errors.New("json schema engine: schema does not compile")}
	out := RenderReport(PlainStyleSet(), r, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 5)
	assert.Equal(t, "✗ agent.yaml 2 errors, 1 warning", lines[0])
	assert.Contains(t, lines[2], "7:18 /model/options/temperature")
	assert.Equal(t, "  ERROR: json schema engine: schema does not compile", lines[3])
	assert.Equal(t, "  WARNING: agent has no instructions", lines[4])
}
