package steps

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/agentcheck/internal/tui"
	"github.com/initializ/agentcheck/internal/tui/components"
)

// ReviewStep shows the collected answers and asks for confirmation.
// The file itself is written by the caller after the wizard exits.
type ReviewStep struct {
	styles   *tui.StyleSet
	path     string
	summary  components.SummaryBox
	complete bool
	kbd      components.KeyHelp
}

// NewReviewStep creates a new review step for a file written to path.
func NewReviewStep(styles *tui.StyleSet, path string) *ReviewStep {
	return &ReviewStep{
		styles: styles,
		path:   path,
		kbd:    components.ReviewKeyHelp(styles.Palette()),
	}
}

// Prepare builds the summary from the wizard context.
func (s *ReviewStep) Prepare(ctx *tui.WizardContext) {
	s.complete = false
	s.summary = components.NewSummaryBox(s.styles.Palette(), "", nil)
	s.summary.Add("File", s.path).Add("Name", ctx.Name).Add("Model", ctx.ModelID)

	instructions := "none (null)"
	if ctx.Instructions != "" {
		instructions = truncate(ctx.Instructions, 60)
	}
	s.summary.Add("Instructions", instructions)

	tools := "none"
	if len(ctx.Tools) > 0 {
		names := make([]string, len(ctx.Tools))
		for i, t := range ctx.Tools {
			names[i] = string(t)
		}
		tools = strings.Join(names, "\n")
	}
	s.summary.Add("Tools", tools)
}

func (s *ReviewStep) Title() string { return "Review" }
func (s *ReviewStep) Icon() string  { return "🚀" }

func (s *ReviewStep) Init() tea.Cmd {
	s.complete = false
	return nil
}

func (s *ReviewStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.complete {
		return s, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			s.complete = true
			return s, completeCmd
		case tea.KeyBackspace:
			return s, backCmd
		}
	}
	return s, nil
}

func (s *ReviewStep) View(width int) string {
	out := s.summary.View(width) + "\n\n"
	out += "  " + s.styles.Highlight.Render("Press Enter to write "+s.path+", Backspace to go back") + "\n\n"
	return out + s.kbd.View()
}

func (s *ReviewStep) Complete() bool  { return s.complete }
func (s *ReviewStep) Summary() string { return "confirmed" }

func (s *ReviewStep) Apply(*tui.WizardContext) {}
