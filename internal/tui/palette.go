package tui

import "github.com/initializ/agentcheck/internal/tui/components"

// Palette projects the style set onto the component palette.
func (s *StyleSet) Palette() components.Palette {
	return components.Palette{
		Accent:         s.Theme.Brand,
		AccentDim:      s.Theme.BrandDim,
		Primary:        s.Theme.Text,
		Secondary:      s.Theme.Subtle,
		Dim:            s.Theme.Muted,
		Label:          s.Highlight,
		Error:          s.Fail,
		Hint:           s.Muted,
		ActiveBorder:   s.FocusFrame,
		InactiveBorder: s.Frame,
		KbdKey:         s.Key,
		KbdDesc:        s.KeyAction,
		SummaryKey:     s.FieldName,
		SummaryValue:   s.FieldValue,
		Box:            s.Box,
	}
}
