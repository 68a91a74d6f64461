// Package steps implements the pages of the init wizard.
package steps

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/agentcheck/internal/tui"
)

func completeCmd() tea.Msg { return tui.StepCompleteMsg{} }

func backCmd() tea.Msg { return tui.StepBackMsg{} }

// truncate shortens s to at most n runes for one-line summaries.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
