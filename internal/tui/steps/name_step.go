package steps

import (
	"errors"
	"fmt"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/agentcheck/internal/tui"
	"github.com/initializ/agentcheck/internal/tui/components"
	"github.com/initializ/agentcheck/types"
)

// ValidateName rejects names the agent schema would refuse.
func ValidateName(val string) error {
	if val == "" {
		return errors.New("name is required")
	}
	if n := utf8.RuneCountInString(val); n > types.MaxNameLength {
		return fmt.Errorf("name is %d characters long, maximum is %d", n, types.MaxNameLength)
	}
	return nil
}

// NameStep collects the agent name.
type NameStep struct {
	input    components.TextInput
	complete bool
	name     string
	prefill  string
}

// NewNameStep creates a new name step. A non-empty prefill completes the
// step without prompting.
func NewNameStep(styles *tui.StyleSet, prefill string) *NameStep {
	input := components.NewTextInput(styles.Palette(),
		"What should we call your agent?", "travel-planner", types.MaxNameLength, ValidateName)
	input.Hint = func(v string) string {
		if v == "" {
			return ""
		}
		return fmt.Sprintf("%d/%d characters", utf8.RuneCountInString(v), types.MaxNameLength)
	}
	if prefill != "" {
		input.SetValue(prefill)
	}
	return &NameStep{input: input, prefill: prefill}
}

func (s *NameStep) Title() string { return "Agent Name" }
func (s *NameStep) Icon() string  { return "📝" }

func (s *NameStep) Init() tea.Cmd {
	if s.prefill != "" && ValidateName(s.prefill) == nil {
		s.complete = true
		s.name = s.prefill
		return completeCmd
	}
	s.complete = false
	return s.input.Init()
}

func (s *NameStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.complete {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Done() {
		s.complete = true
		s.name = s.input.Value()
		return s, completeCmd
	}
	return s, cmd
}

func (s *NameStep) View(width int) string { return s.input.View(width) }
func (s *NameStep) Complete() bool        { return s.complete }
func (s *NameStep) Summary() string       { return s.name }

func (s *NameStep) Apply(ctx *tui.WizardContext) {
	ctx.Name = s.name
}
