package steps

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/agentcheck/internal/tui"
	"github.com/initializ/agentcheck/internal/tui/components"
	"github.com/initializ/agentcheck/types"
)

// ToolOptions describes each tool variant in the wizard.
var ToolOptions = []components.Option{
	{Label: "Bing grounding", Value: string(types.ToolBingGrounding), Icon: "🔎",
		Description: "Ground answers in web search results", Note: "needs one tool connection id"},
	{Label: "Code interpreter", Value: string(types.ToolCodeInterpreter), Icon: "🐍",
		Description: "Run code against uploaded files", Note: "up to 20 file ids"},
	{Label: "OpenAPI", Value: string(types.ToolOpenAPI), Icon: "🔌",
		Description: "Call an HTTP API described by an OpenAPI document", Note: "writes a placeholder specification"},
	{Label: "File search", Value: string(types.ToolFileSearch), Icon: "📚",
		Description: "Search a vector store", Note: "at most one vector store id"},
}

// ToolsStep selects which tool variants the agent gets.
type ToolsStep struct {
	styles   *tui.StyleSet
	selector components.MultiSelect
	complete bool
	selected []types.ToolType
}

// NewToolsStep creates a new tools step with preselected tool types checked.
func NewToolsStep(styles *tui.StyleSet, preselected ...types.ToolType) *ToolsStep {
	values := make([]string, len(preselected))
	for i, t := range preselected {
		values[i] = string(t)
	}
	return &ToolsStep{
		styles:   styles,
		selector: components.NewMultiSelect(styles.Palette(), ToolOptions, values...),
	}
}

func (s *ToolsStep) Title() string { return "Tools" }
func (s *ToolsStep) Icon() string  { return "🔧" }

func (s *ToolsStep) Init() tea.Cmd {
	s.complete = false
	return s.selector.Init()
}

func (s *ToolsStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.complete {
		return s, nil
	}
	var cmd tea.Cmd
	s.selector, cmd = s.selector.Update(msg)
	if s.selector.Done() {
		s.selected = s.selected[:0]
		for _, v := range s.selector.SelectedValues() {
			s.selected = append(s.selected, types.ToolType(v))
		}
		s.complete = true
		return s, completeCmd
	}
	return s, cmd
}

func (s *ToolsStep) View(width int) string {
	return "\n  " + s.styles.Highlight.Render("Which tools can the agent call?") + "\n\n" + s.selector.View(width)
}

func (s *ToolsStep) Complete() bool { return s.complete }

func (s *ToolsStep) Summary() string {
	if len(s.selected) == 0 {
		return "none"
	}
	names := make([]string, len(s.selected))
	for i, t := range s.selected {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func (s *ToolsStep) Apply(ctx *tui.WizardContext) {
	ctx.Tools = append([]types.ToolType(nil), s.selected...)
}
