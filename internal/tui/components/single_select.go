package components

import tea "github.com/charmbracelet/bubbletea"

// SingleSelect is a navigable radio-button list.
type SingleSelect struct {
	Options  []Option
	cursor   cursor
	selected int
	done     bool
	palette  Palette
	kbd      KeyHelp
}

// NewSingleSelect creates a new single-select component.
func NewSingleSelect(p Palette, options []Option) SingleSelect {
	return SingleSelect{
		Options:  options,
		cursor:   cursor{n: len(options)},
		selected: -1,
		palette:  p,
		kbd:      newKeyHelp(p, selectKeys),
	}
}

// Init clears a previous selection so the list can be re-used after
// back-navigation.
func (s *SingleSelect) Init() tea.Cmd {
	s.done = false
	s.selected = -1
	return nil
}

// Update handles keyboard input.
func (s SingleSelect) Update(msg tea.Msg) (SingleSelect, tea.Cmd) {
	if s.done {
		return s, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	if s.cursor.move(key.String()) {
		return s, nil
	}
	if key.Type == tea.KeyEnter && len(s.Options) > 0 {
		s.selected = s.cursor.pos
		s.done = true
	}
	return s, nil
}

// View renders the select list.
func (s SingleSelect) View(width int) string {
	var out string
	for i, o := range s.Options {
		focused := i == s.cursor.pos
		marker := s.palette.fg(s.palette.Dim).Render("○")
		if focused {
			marker = s.palette.fg(s.palette.Accent).Render("◉")
		}
		out += renderOption(s.palette, o, marker, focused, width)
	}
	return out + "\n" + s.kbd.View()
}

// Done returns true when a selection has been made.
func (s SingleSelect) Done() bool {
	return s.done
}

// Selected returns the chosen option, or false when none is chosen.
func (s SingleSelect) Selected() (Option, bool) {
	if s.selected < 0 || s.selected >= len(s.Options) {
		return Option{}, false
	}
	return s.Options[s.selected], true
}
