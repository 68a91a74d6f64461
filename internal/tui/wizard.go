package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/agentcheck/types"
)

// ErrWizardCancelled is returned when the user quits before the last step.
var ErrWizardCancelled = errors.New("wizard cancelled")

// WizardContext accumulates the answers collected across wizard steps.
type WizardContext struct {
	Name         string
	ModelID      string
	Instructions string
	Tools        []types.ToolType
}

// WizardModel is the top-level bubbletea model that orchestrates the wizard.
type WizardModel struct {
	styles  *StyleSet
	steps   []Step
	current int
	ctx     *WizardContext
	width   int
	height  int
	done    bool
	err     error
	version string
}

// NewWizardModel creates a new wizard with the given steps.
func NewWizardModel(styles *StyleSet, steps []Step, version string) WizardModel {
	return WizardModel{
		styles:  styles,
		steps:   steps,
		ctx:     &WizardContext{},
		width:   80,
		height:  24,
		version: version,
	}
}

// Init initializes the first step.
func (w WizardModel) Init() tea.Cmd {
	if len(w.steps) == 0 {
		return tea.Quit
	}
	return w.steps[0].Init()
}

// advanceStep applies the current step's answers and moves to the next one.
func (w *WizardModel) advanceStep() tea.Cmd {
	if w.current < len(w.steps) {
		w.steps[w.current].Apply(w.ctx)
	}

	w.current++
	if w.current >= len(w.steps) {
		w.done = true
		return tea.Quit
	}

	if p, ok := w.steps[w.current].(Preparer); ok {
		p.Prepare(w.ctx)
	}
	return w.steps[w.current].Init()
}

// Update handles messages for the wizard.
func (w WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			w.err = ErrWizardCancelled
			return w, tea.Quit
		}

	case StepBackMsg:
		if w.current > 0 {
			w.current--
			return w, w.steps[w.current].Init()
		}
		return w, nil

	case StepCompleteMsg:
		return w, w.advanceStep()
	}

	if w.current < len(w.steps) {
		updated, cmd := w.steps[w.current].Update(msg)
		w.steps[w.current] = updated
		return w, cmd
	}
	return w, nil
}

// View renders the entire wizard UI.
func (w WizardModel) View() string {
	out := "\n" + RenderBanner(w.styles, w.version, w.width) + "\n"
	out += RenderProgress(w.steps, w.current, w.styles, w.width) + "\n"
	if w.current < len(w.steps) {
		out += w.steps[w.current].View(w.width)
	}
	return out + "\n"
}

// Context returns the accumulated wizard context.
func (w WizardModel) Context() *WizardContext {
	return w.ctx
}

// Err returns any error that occurred during the wizard.
func (w WizardModel) Err() error {
	return w.err
}

// Done returns true if the wizard completed successfully.
func (w WizardModel) Done() bool {
	return w.done
}
