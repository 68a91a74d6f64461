package steps

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/agentcheck/internal/tui"
	"github.com/initializ/agentcheck/internal/tui/components"
)

const customModel = "custom"

// ModelPresets are the model identifiers offered by the wizard.
var ModelPresets = []components.Option{
	{Label: "gpt-4o", Value: "gpt-4o", Description: "General purpose, multimodal", Icon: "🔷"},
	{Label: "gpt-4o-mini", Value: "gpt-4o-mini", Description: "Fast and inexpensive", Icon: "🔹"},
	{Label: "gpt-4.1", Value: "gpt-4.1", Description: "Long context, strong tool use", Icon: "🔶"},
	{Label: "Other", Value: customModel, Description: "Type a deployment or model id", Icon: "⚙️"},
}

type modelPhase int

const (
	modelSelectPhase modelPhase = iota
	modelCustomPhase
)

// ModelStep picks the model identifier, either from presets or typed in.
type ModelStep struct {
	styles   *tui.StyleSet
	phase    modelPhase
	selector components.SingleSelect
	custom   components.TextInput
	complete bool
	modelID  string
}

// NewModelStep creates a new model step.
func NewModelStep(styles *tui.StyleSet) *ModelStep {
	return &ModelStep{
		styles:   styles,
		selector: components.NewSingleSelect(styles.Palette(), ModelPresets),
	}
}

func (s *ModelStep) Title() string { return "Model" }
func (s *ModelStep) Icon() string  { return "🤖" }

func (s *ModelStep) Init() tea.Cmd {
	s.complete = false
	s.phase = modelSelectPhase
	return s.selector.Init()
}

func (s *ModelStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.complete {
		return s, nil
	}

	if s.phase == modelCustomPhase {
		var cmd tea.Cmd
		s.custom, cmd = s.custom.Update(msg)
		if s.custom.Done() {
			s.modelID = s.custom.Value()
			s.complete = true
			return s, completeCmd
		}
		return s, cmd
	}

	var cmd tea.Cmd
	s.selector, cmd = s.selector.Update(msg)
	if !s.selector.Done() {
		return s, cmd
	}
	opt, _ := s.selector.Selected()
	if opt.Value == customModel {
		s.phase = modelCustomPhase
		s.custom = components.NewTextInput(s.styles.Palette(), "Model id", "my-deployment", 0, func(v string) error {
			if v == "" {
				return errors.New("model id is required")
			}
			return nil
		})
		return s, s.custom.Init()
	}
	s.modelID = opt.Value
	s.complete = true
	return s, completeCmd
}

func (s *ModelStep) View(width int) string {
	if s.phase == modelCustomPhase {
		return s.custom.View(width)
	}
	return "\n  " + s.styles.Highlight.Render("Which model backs the agent?") + "\n\n" + s.selector.View(width)
}

func (s *ModelStep) Complete() bool  { return s.complete }
func (s *ModelStep) Summary() string { return s.modelID }

func (s *ModelStep) Apply(ctx *tui.WizardContext) {
	ctx.ModelID = s.modelID
}
