package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/initializ/agentcheck/document"
	"github.com/initializ/agentcheck/internal/tui"
	"github.com/initializ/agentcheck/internal/tui/steps"
	"github.com/initializ/agentcheck/types"
	"github.com/initializ/agentcheck/validate"
)

// Placeholder values written for tools whose options cannot be empty.
const (
	placeholderConnection = "bing-connection"
	placeholderOpenAPIID  = "api"
)

const placeholderOpenAPISpec = `{
  "openapi": "3.0.1",
  "info": {"title": "API", "version": "1.0.0"},
  "paths": {}
}
`

// initAnswers is everything needed to write a new agent file.
type initAnswers struct {
	Name         string
	ModelID      string
	Instructions string
	Tools        []types.ToolType
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new agent configuration file",
	Long: "Create a new agent configuration file (default " + defaultAgentFile + ") with an " +
		"interactive wizard, or from flags with --non-interactive. The file is validated " +
		"before it is written.",
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringP("name", "n", "", "agent name")
	initCmd.Flags().StringP("model", "m", "", "model id (e.g. gpt-4o)")
	initCmd.Flags().String("instructions", "", "system instructions (empty writes null)")
	initCmd.Flags().StringSlice("tools", nil, "tools to enable: "+toolList())
	initCmd.Flags().Bool("non-interactive", false, "run without the wizard (requires --name and --model)")
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
}

func toolList() string {
	names := make([]string, 0, len(types.ToolTypes()))
	for _, t := range types.ToolTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := defaultAgentFile
	if len(args) > 0 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil {
		if !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		log.Warn("overwriting existing agent file", map[string]any{"path": path})
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	var a initAnswers
	a.Name, _ = cmd.Flags().GetString("name")
	a.ModelID, _ = cmd.Flags().GetString("model")
	a.Instructions, _ = cmd.Flags().GetString("instructions")
	toolNames, _ := cmd.Flags().GetStringSlice("tools")
	tools, err := parseToolTypes(toolNames)
	if err != nil {
		return err
	}
	a.Tools = tools

	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	if nonInteractive {
		if a.Name == "" || a.ModelID == "" {
			return errors.New("--non-interactive requires --name and --model")
		}
	} else {
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return errors.New("init needs a terminal; use --non-interactive with --name and --model")
		}
		if a, err = runWizard(path, a); err != nil {
			return err
		}
	}

	data, err := renderAgentFile(a)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info("agent file written", map[string]any{"path": path, "tools": len(a.Tools)})

	styles := stylesFor(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", styles.Pass.Render("✓"), path)
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", styles.Muted.Render("Next: agentcheck validate "+path))
	return nil
}

func parseToolTypes(names []string) ([]types.ToolType, error) {
	var out []types.ToolType
	seen := make(map[types.ToolType]bool)
	for _, n := range names {
		t := types.ToolType(strings.TrimSpace(n))
		if !t.Valid() {
			return nil, fmt.Errorf("%w %q (expected one of %s)", types.ErrUnknownToolType, n, toolList())
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// runWizard collects answers interactively. Flag values prefill the wizard.
func runWizard(path string, a initAnswers) (initAnswers, error) {
	styles := tui.NewStyleSet(tui.DetectTheme(opts.Theme))
	wizard := tui.NewWizardModel(styles, []tui.Step{
		steps.NewNameStep(styles, a.Name),
		steps.NewModelStep(styles),
		steps.NewInstructionsStep(styles),
		steps.NewToolsStep(styles, a.Tools...),
		steps.NewReviewStep(styles, path),
	}, appVersion)

	final, err := tea.NewProgram(wizard).Run()
	if err != nil {
		return a, fmt.Errorf("running wizard: %w", err)
	}
	w, ok := final.(tui.WizardModel)
	if !ok {
		return a, errors.New("running wizard: unexpected model")
	}
	if w.Err() != nil {
		return a, w.Err()
	}
	if !w.Done() {
		return a, tui.ErrWizardCancelled
	}

	ctx := w.Context()
	return initAnswers{
		Name:         ctx.Name,
		ModelID:      ctx.ModelID,
		Instructions: ctx.Instructions,
		Tools:        ctx.Tools,
	}, nil
}

// buildAgentConfig assembles the typed config, filling tool options with
// placeholders that satisfy the schema.
func buildAgentConfig(a initAnswers) *types.AgentConfig {
	cfg := types.NewAgentConfig(a.Name, a.ModelID)
	cfg.SetInstructions(a.Instructions)

	for _, t := range a.Tools {
		switch t {
		case types.ToolBingGrounding:
			cfg.Tools = append(cfg.Tools, types.BingGroundingTool{
				Options: types.BingGroundingOptions{ToolConnections: []string{placeholderConnection}},
			})
		case types.ToolCodeInterpreter:
			cfg.Tools = append(cfg.Tools, types.CodeInterpreterTool{})
		case types.ToolOpenAPI:
			cfg.Tools = append(cfg.Tools, types.OpenAPITool{
				ID: placeholderOpenAPIID,
				Options: types.OpenAPIOptions{
					Specification: placeholderOpenAPISpec,
					Auth:          types.OpenAPIAuth{Type: "anonymous"},
				},
			})
		case types.ToolFileSearch:
			cfg.Tools = append(cfg.Tools, types.FileSearchTool{})
		}
	}
	return cfg
}

// renderAgentFile encodes the answers and validates the result.
func renderAgentFile(a initAnswers) ([]byte, error) {
	data, err := types.Marshal(buildAgentConfig(a))
	if err != nil {
		return nil, err
	}

	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("re-reading generated config: %w", err)
	}
	if r := validate.ValidateDocument(doc); !r.Valid {
		msgs := make([]string, len(r.Errors))
		for i, e := range r.Errors {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("generated config is invalid:\n  %s", strings.Join(msgs, "\n  "))
	}
	return data, nil
}
