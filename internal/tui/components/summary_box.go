package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SummaryRow represents a key-value pair in the summary.
type SummaryRow struct {
	Key   string
	Value string
}

// SummaryBox renders a 2-column key/value grid in a bordered box.
type SummaryBox struct {
	Title string
	Rows  []SummaryRow

	KeyStyle    lipgloss.Style
	ValueStyle  lipgloss.Style
	BorderStyle lipgloss.Style
}

// NewSummaryBox creates a new summary box.
func NewSummaryBox(p Palette, title string, rows []SummaryRow) SummaryBox {
	return SummaryBox{
		Title:       title,
		Rows:        rows,
		KeyStyle:    p.SummaryKey,
		ValueStyle:  p.SummaryValue,
		BorderStyle: p.Box,
	}
}

// Add appends a row and returns the box for chaining.
func (s *SummaryBox) Add(key, value string) *SummaryBox {
	s.Rows = append(s.Rows, SummaryRow{Key: key, Value: value})
	return s
}

// View renders the summary box. Multi-line values are indented under
// their value column.
func (s SummaryBox) View(width int) string {
	boxWidth := clampWidth(width, 8, 30)

	var b strings.Builder
	if s.Title != "" {
		b.WriteString(s.ValueStyle.Render(s.Title) + "\n")
	}
	for _, row := range s.Rows {
		key := s.KeyStyle.Render(row.Key)
		indent := strings.Repeat(" ", lipgloss.Width(key)+2)
		for i, line := range strings.Split(row.Value, "\n") {
			if i == 0 {
				b.WriteString(key + "  " + s.ValueStyle.Render(line) + "\n")
				continue
			}
			b.WriteString(indent + s.ValueStyle.Render(line) + "\n")
		}
	}

	return "  " + s.BorderStyle.Width(boxWidth).Render(strings.TrimRight(b.String(), "\n"))
}
