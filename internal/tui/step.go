package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step is the interface that all wizard steps must implement.
type Step interface {
	// Title returns the step's display title.
	Title() string
	// Icon returns the step's icon/emoji.
	Icon() string
	// Init returns the initial command for this step.
	Init() tea.Cmd
	// Update handles messages and returns the updated step and command.
	Update(msg tea.Msg) (Step, tea.Cmd)
	// View renders the step content.
	View(width int) string
	// Complete returns true when the step has finished.
	Complete() bool
	// Summary returns a one-line summary for the collapsed view.
	Summary() string
	// Apply writes collected data to the wizard context.
	Apply(ctx *WizardContext)
}

// Preparer is implemented by steps that render from earlier answers.
type Preparer interface {
	Prepare(ctx *WizardContext)
}

// RenderProgress renders finished steps with their summaries followed by
// the header of the active step.
func RenderProgress(steps []Step, current int, styles *StyleSet, width int) string {
	var b strings.Builder

	for i := 0; i < current && i < len(steps); i++ {
		badge := styles.DoneBadge.Render(" ✓ ")
		title := styles.Text.Bold(true).Render(steps[i].Title())
		fmt.Fprintf(&b, "  %s  %s\n", badge, title)
		fmt.Fprintf(&b, "       %s\n\n", styles.Subtle.Render(steps[i].Summary()))
	}

	if current < len(steps) {
		num := fmt.Sprintf(" %d/%d ", current+1, len(steps))
		badge := styles.CurrentBadge.Render(num)
		title := steps[current].Icon() + " " + steps[current].Title()
		dividerLen := width - 10 - lipgloss.Width(num) - lipgloss.Width(title)
		if dividerLen < 2 {
			dividerLen = 2
		}
		divider := styles.Muted.Render(" " + strings.Repeat("─", dividerLen))
		fmt.Fprintf(&b, "  %s  %s%s\n", badge, styles.Text.Bold(true).Render(title), divider)
	}

	return b.String()
}
