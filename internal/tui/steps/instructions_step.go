package steps

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/agentcheck/internal/tui"
	"github.com/initializ/agentcheck/internal/tui/components"
)

// InstructionsStep collects the system instructions. An empty answer
// leaves instructions null.
type InstructionsStep struct {
	input        components.TextInput
	complete     bool
	instructions string
}

// NewInstructionsStep creates a new instructions step.
func NewInstructionsStep(styles *tui.StyleSet) *InstructionsStep {
	input := components.NewTextInput(styles.Palette(),
		"What should the agent do? (optional)", "You are a helpful travel planner.", 0, nil)
	input.Hint = func(v string) string {
		if v == "" {
			return "leave empty to write instructions: null"
		}
		return ""
	}
	return &InstructionsStep{input: input}
}

func (s *InstructionsStep) Title() string { return "Instructions" }
func (s *InstructionsStep) Icon() string  { return "💬" }

func (s *InstructionsStep) Init() tea.Cmd {
	s.complete = false
	return s.input.Init()
}

func (s *InstructionsStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.complete {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Done() {
		s.complete = true
		s.instructions = s.input.Value()
		return s, completeCmd
	}
	return s, cmd
}

func (s *InstructionsStep) View(width int) string { return s.input.View(width) }
func (s *InstructionsStep) Complete() bool        { return s.complete }

func (s *InstructionsStep) Summary() string {
	if s.instructions == "" {
		return "none"
	}
	return truncate(s.instructions, 48)
}

func (s *InstructionsStep) Apply(ctx *tui.WizardContext) {
	ctx.Instructions = s.instructions
}
