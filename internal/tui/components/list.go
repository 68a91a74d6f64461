package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Option is one entry of a select list.
type Option struct {
	Label       string
	Value       string
	Description string
	Icon        string
	// Note is shown under the description while the option is focused.
	Note string
}

// cursor tracks the focused row of a list.
type cursor struct {
	pos int
	n   int
}

func (c *cursor) move(key string) bool {
	switch key {
	case "up", "k":
		if c.pos > 0 {
			c.pos--
		}
	case "down", "j":
		if c.pos < c.n-1 {
			c.pos++
		}
	default:
		return false
	}
	return true
}

// renderOption draws one bordered row with a right-aligned marker.
func renderOption(p Palette, o Option, marker string, focused bool, width int) string {
	itemWidth := clampWidth(width, 6, 30)

	var label, detail string
	if focused {
		label = p.fg(p.Primary).Bold(true).Render(o.Label)
		if o.Description != "" {
			detail += "\n      " + p.fg(p.Secondary).Render(o.Description)
		}
		if o.Note != "" {
			detail += "\n      " + p.fg(p.AccentDim).Render("› "+o.Note)
		}
	} else {
		label = p.fg(p.Secondary).Render(o.Label)
	}

	icon := ""
	if o.Icon != "" {
		icon = o.Icon + "  "
	}
	first := fmt.Sprintf("  %s%s", icon, label)
	pad := itemWidth - lipgloss.Width(first) - 4
	if pad < 1 {
		pad = 1
	}

	border := p.InactiveBorder
	if focused {
		border = p.ActiveBorder
	}
	return "  " + border.Width(itemWidth).Render(first+strings.Repeat(" ", pad)+marker+detail) + "\n"
}
