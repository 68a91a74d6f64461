package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/initializ/agentcheck/config"
	"github.com/initializ/agentcheck/internal/tui"
	"github.com/initializ/agentcheck/internal/tui/components"
	"github.com/initializ/agentcheck/types"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize a valid agent configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	rep := validateFile(path, "builtin")
	if rep.Err != nil {
		return &ExitError{Code: ExitUsage, Err: rep.Err}
	}
	if rep.Failed(false) {
		if _, err := io.WriteString(out, tui.RenderReport(stylesFor(out), rep, false)); err != nil {
			return err
		}
		return &ExitError{Code: ExitInvalid}
	}

	cfg, err := config.LoadAgentConfig(path)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	styles := stylesFor(out)
	box := components.NewSummaryBox(styles.Palette(), cfg.Name, describeRows(cfg))
	_, err = fmt.Fprintln(out, box.View(termWidth(out)))
	return err
}

func describeRows(cfg *types.AgentConfig) []components.SummaryRow {
	rows := []components.SummaryRow{{Key: "Version", Value: cfg.Version}}

	if cfg.Description != nil && *cfg.Description != "" {
		rows = append(rows, components.SummaryRow{Key: "Description", Value: *cfg.Description})
	}
	if m := cfg.Metadata; m != nil {
		if m.Author != "" {
			rows = append(rows, components.SummaryRow{Key: "Author", Value: m.Author})
		}
		if m.Tag != "" {
			rows = append(rows, components.SummaryRow{Key: "Tag", Value: m.Tag})
		}
	}

	id := "new assistant"
	if cfg.ID != nil && *cfg.ID != "" {
		id = *cfg.ID
	}
	rows = append(rows,
		components.SummaryRow{Key: "Assistant", Value: id},
		components.SummaryRow{Key: "Model", Value: describeModel(cfg.Model)},
		components.SummaryRow{Key: "Instructions", Value: describeInstructions(cfg)},
		components.SummaryRow{Key: "Tools", Value: describeTools(cfg.Tools)},
	)
	return rows
}

func describeModel(m types.Model) string {
	s := m.ID
	if m.Options == nil {
		return s
	}
	var parts []string
	if m.Options.Temperature != nil {
		parts = append(parts, "temperature "+formatFloat(*m.Options.Temperature))
	}
	if m.Options.TopP != nil {
		parts = append(parts, "top_p "+formatFloat(*m.Options.TopP))
	}
	if len(parts) > 0 {
		s += " (" + strings.Join(parts, ", ") + ")"
	}
	return s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func describeInstructions(cfg *types.AgentConfig) string {
	if !cfg.HasInstructions() {
		return "none"
	}
	text := strings.TrimSpace(cfg.Instructions.Value.Value)
	lines := strings.Count(text, "\n") + 1
	first, _, _ := strings.Cut(text, "\n")
	if r := []rune(first); len(r) > 40 {
		first = string(r[:39]) + "…"
	}
	if lines > 1 {
		return fmt.Sprintf("%s (%d lines)", first, lines)
	}
	return first
}

func describeTools(tools []types.Tool) string {
	if len(tools) == 0 {
		return "none"
	}
	lines := make([]string, 0, len(tools))
	for _, t := range tools {
		switch t := t.(type) {
		case types.BingGroundingTool:
			lines = append(lines, fmt.Sprintf("bing_grounding via %s", strings.Join(t.Options.ToolConnections, ", ")))
		case types.CodeInterpreterTool:
			lines = append(lines, fmt.Sprintf("code_interpreter, %s", count(len(t.Options.FileIDs), "file")))
		case types.OpenAPITool:
			lines = append(lines, fmt.Sprintf("openapi %q, auth %s", t.ID, t.Options.Auth.Type))
		case types.FileSearchTool:
			lines = append(lines, fmt.Sprintf("file_search, %s", count(len(t.Options.VectorStoreIDs), "vector store")))
		}
	}
	return strings.Join(lines, "\n")
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
