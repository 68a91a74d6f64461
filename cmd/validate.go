package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/initializ/agentcheck/config"
	"github.com/initializ/agentcheck/internal/tui"
	"github.com/initializ/agentcheck/validate"
)

const defaultAgentFile = "agent.yaml"

var validateCmd = &cobra.Command{
	Use:   "validate [files or patterns...]",
	Short: "Validate agent configuration files",
	Long: "Validate one or more agent configuration files (default " + defaultAgentFile + "). " +
		"Exits 0 when every file is valid, 1 when any file has violations and 2 when a file " +
		"cannot be read or parsed. Arguments may be glob patterns such as 'agents/**.yaml'.",
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("format", "text", "output format: text or json")
	validateCmd.Flags().Bool("strict", false, "treat warnings as errors")
	validateCmd.Flags().String("engine", "builtin", "validation engine: builtin, jsonschema, or both")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{defaultAgentFile}
	}
	files, err := config.ExpandPaths(args)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	reports := make([]tui.FileReport, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			reports[i] = validateFile(path, opts.Engine)
			return nil
		})
	}
	_ = g.Wait()

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		err = writeJSONReport(out, reports)
	} else {
		err = writeTextReport(out, reports)
	}
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	code, failed := ExitOK, 0
	for _, r := range reports {
		if r.Failed(opts.Strict) {
			failed++
		}
		switch {
		case r.Err != nil:
			code = ExitUsage
		case r.Failed(opts.Strict) && code == ExitOK:
			code = ExitInvalid
		}
	}
	log.Info("validation finished", map[string]any{"files": len(reports), "failed": failed, "engine": opts.Engine})
	if code != ExitOK {
		return &ExitError{Code: code}
	}
	return nil
}

// validateFile loads path and runs the configured engine over it.
func validateFile(path, engine string) tui.FileReport {
	start := time.Now()
	rep := tui.FileReport{Path: path}

	doc, err := config.LoadDocument(path)
	if err != nil {
		log.Debug("load failed", map[string]any{"path": path, "error": err.Error()})
		rep.Err = err
		return rep
	}

	var schemaResult *validate.ValidationResult
	if engine == "jsonschema" || engine == "both" {
		schemaResult, err = validate.ValidateDocumentWithSchema(doc)
		if err != nil {
			log.Error("json schema engine failed", map[string]any{"path": path, "error": err.Error()})
			rep.Err = fmt.Errorf("json schema engine: %w", err)
		}
	}

	switch engine {
	case "jsonschema":
		rep.Result = schemaResult
	case "both":
		// The builtin findings are reported even when the schema engine fails.
		rep.Result = validate.ValidateDocument(doc)
		if schemaResult != nil {
			rep.Disagreements = validate.Disagreements(rep.Result, schemaResult)
		}
	default:
		rep.Result = validate.ValidateDocument(doc)
	}

	if rep.Result != nil {
		log.Debug("validated", map[string]any{
			"path":     path,
			"engine":   engine,
			"errors":   len(rep.Result.Errors),
			"warnings": len(rep.Result.Warnings),
			"elapsed":  time.Since(start),
		})
	}
	return rep
}

func writeTextReport(w io.Writer, reports []tui.FileReport) error {
	styles := stylesFor(w)
	for _, r := range reports {
		if _, err := io.WriteString(w, tui.RenderReport(styles, r, opts.Strict)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, tui.RenderTotals(styles, reports, opts.Strict))
	return err
}

type jsonFileReport struct {
	Path          string                     `json:"path"`
	Valid         bool                       `json:"valid"`
	Error         string                     `json:"error,omitempty"`
	Errors        []validate.ValidationError `json:"errors"`
	Warnings      []string                   `json:"warnings"`
	Disagreements []string                   `json:"disagreements,omitempty"`
}

type jsonReport struct {
	Valid  bool             `json:"valid"`
	Engine string           `json:"engine"`
	Strict bool             `json:"strict"`
	Files  []jsonFileReport `json:"files"`
}

func writeJSONReport(w io.Writer, reports []tui.FileReport) error {
	out := jsonReport{
		Valid:  true,
		Engine: opts.Engine,
		Strict: opts.Strict,
		Files:  make([]jsonFileReport, 0, len(reports)),
	}
	for _, r := range reports {
		f := jsonFileReport{
			Path:          r.Path,
			Valid:         !r.Failed(opts.Strict),
			Errors:        []validate.ValidationError{},
			Warnings:      []string{},
			Disagreements: r.Disagreements,
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		if r.Result != nil {
			f.Errors = r.Result.Errors
			if r.Result.Warnings != nil {
				f.Warnings = r.Result.Warnings
			}
		}
		out.Valid = out.Valid && f.Valid
		out.Files = append(out.Files, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
