package tui

import (
	"fmt"
	"strings"

	"github.com/initializ/agentcheck/validate"
)

// FileReport is the outcome of validating one file.
type FileReport struct {
	Path   string
	Result *validate.ValidationResult
	// Err is set when the file could not be read or parsed, or when an
	// engine failed to run. Result may still hold another engine's findings.
	Err error
	// Disagreements lists documents on which the two validation engines
	// disagreed. Only set with --engine both.
	Disagreements []string
}

// Failed reports whether the file fails, treating warnings as failures
// when strict is set.
func (r FileReport) Failed(strict bool) bool {
	if r.Err != nil || r.Result == nil {
		return true
	}
	if !r.Result.Valid || len(r.Disagreements) > 0 {
		return true
	}
	return strict && len(r.Result.Warnings) > 0
}

// RenderReport renders one file's diagnostics as aligned text lines.
func RenderReport(styles *StyleSet, r FileReport, strict bool) string {
	var b strings.Builder

	if r.Err != nil && r.Result == nil {
		fmt.Fprintf(&b, "%s %s\n  %s %v\n", styles.Fail.Render("✗"), styles.Text.Render(r.Path), styles.Fail.Render("ERROR:"), r.Err)
		return b.String()
	}

	res := r.Result
	if res == nil {
		res = &validate.ValidationResult{}
	}

	switch {
	case !r.Failed(strict):
		fmt.Fprintf(&b, "%s %s %s\n", styles.Pass.Render("✓"), styles.Text.Render(r.Path), styles.Muted.Render("valid"))
	default:
		counts := []string{plural(len(res.Errors), "error")}
		if n := len(res.Warnings); n > 0 {
			counts = append(counts, plural(n, "warning"))
		}
		fmt.Fprintf(&b, "%s %s %s\n", styles.Fail.Render("✗"), styles.Text.Render(r.Path), styles.Muted.Render(strings.Join(counts, ", ")))
	}

	for _, e := range res.Errors {
		loc := ""
		if e.Line > 0 {
			loc = fmt.Sprintf("%d:%d ", e.Line, e.Column)
		}
		fmt.Fprintf(&b, "  %s %s%s %s %s\n",
			styles.Fail.Render("ERROR:"),
			styles.Position.Render(loc),
			styles.Pointer.Render(e.DisplayPath()),
			e.Message,
			styles.KindTag.Render("["+e.Kind.String()+"]"),
		)
	}
	if r.Err != nil {
		fmt.Fprintf(&b, "  %s %v\n", styles.Fail.Render("ERROR:"), r.Err)
	}
	for _, d := range r.Disagreements {
		fmt.Fprintf(&b, "  %s engines disagree: %s\n", styles.Fail.Render("ERROR:"), d)
	}

	label := "WARNING:"
	if strict {
		label = "ERROR (strict):"
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&b, "  %s %s\n", styles.Warn.Render(label), w)
	}

	return b.String()
}

// RenderTotals renders the closing line for a multi-file run.
func RenderTotals(styles *StyleSet, reports []FileReport, strict bool) string {
	failed := 0
	for _, r := range reports {
		if r.Failed(strict) {
			failed++
		}
	}
	if failed == 0 {
		return styles.Pass.Render(fmt.Sprintf("Validation passed: %s checked.", plural(len(reports), "file"))) + "\n"
	}
	return styles.Fail.Render(fmt.Sprintf("Validation failed: %d of %s invalid.", failed, plural(len(reports), "file"))) + "\n"
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
