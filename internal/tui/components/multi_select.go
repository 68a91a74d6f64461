package components

import tea "github.com/charmbracelet/bubbletea"

// MultiSelect is a navigable checkbox list.
type MultiSelect struct {
	Options []Option
	checked []bool
	cursor  cursor
	done    bool
	palette Palette
	kbd     KeyHelp
}

// NewMultiSelect creates a checkbox list. Options whose value appears in
// preselected start checked.
func NewMultiSelect(p Palette, options []Option, preselected ...string) MultiSelect {
	checked := make([]bool, len(options))
	for i, o := range options {
		for _, v := range preselected {
			if o.Value == v {
				checked[i] = true
			}
		}
	}
	return MultiSelect{
		Options: options,
		checked: checked,
		cursor:  cursor{n: len(options)},
		palette: p,
		kbd:     newKeyHelp(p, toggleKeys),
	}
}

// Init re-arms the list after back-navigation. Checked state is kept.
func (m *MultiSelect) Init() tea.Cmd {
	m.done = false
	return nil
}

// Update handles keyboard input.
func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, tea.Cmd) {
	if m.done {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.cursor.move(key.String()) {
		return m, nil
	}
	switch {
	case key.Type == tea.KeySpace || key.String() == " ":
		if len(m.checked) > 0 {
			m.checked[m.cursor.pos] = !m.checked[m.cursor.pos]
		}
	case key.Type == tea.KeyEnter:
		m.done = true
	}
	return m, nil
}

// View renders the checkbox list.
func (m MultiSelect) View(width int) string {
	var out string
	for i, o := range m.Options {
		marker := m.palette.fg(m.palette.Dim).Render("☐")
		if m.checked[i] {
			marker = m.palette.fg(m.palette.Accent).Render("☑")
		}
		out += renderOption(m.palette, o, marker, i == m.cursor.pos, width)
	}
	return out + "\n" + m.kbd.View()
}

// Done returns true when selection is confirmed.
func (m MultiSelect) Done() bool {
	return m.done
}

// SelectedValues returns the values of all checked options in list order.
func (m MultiSelect) SelectedValues() []string {
	var vals []string
	for i, o := range m.Options {
		if m.checked[i] {
			vals = append(vals, o.Value)
		}
	}
	return vals
}

// SelectedLabels returns the labels of all checked options in list order.
func (m MultiSelect) SelectedLabels() []string {
	var labels []string
	for i, o := range m.Options {
		if m.checked[i] {
			labels = append(labels, o.Label)
		}
	}
	return labels
}
