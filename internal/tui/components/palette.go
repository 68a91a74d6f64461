// Package components holds the reusable widgets of the init wizard.
package components

import "github.com/charmbracelet/lipgloss"

// Palette carries the colors and styles a component renders with. It is
// derived from the active theme so components stay theme-agnostic.
type Palette struct {
	Accent    lipgloss.Color
	AccentDim lipgloss.Color
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color

	Label lipgloss.Style
	Error lipgloss.Style
	Hint  lipgloss.Style

	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	KbdKey  lipgloss.Style
	KbdDesc lipgloss.Style

	SummaryKey   lipgloss.Style
	SummaryValue lipgloss.Style
	Box          lipgloss.Style
}

func (p Palette) fg(c lipgloss.Color) lipgloss.Style {
	if c == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// clampWidth keeps a rendered width inside a usable range.
func clampWidth(width, margin, min int) int {
	w := width - margin
	if w < min {
		return min
	}
	return w
}
