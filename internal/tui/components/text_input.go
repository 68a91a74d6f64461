package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextInput is a styled single-line entry wrapping bubbles/textinput.
type TextInput struct {
	Label string

	// Hint, when set, renders a dim line under the input from its value.
	Hint func(value string) string

	input      textinput.Model
	validateFn func(string) error
	done       bool
	err        string
	palette    Palette
	kbd        KeyHelp
}

// NewTextInput creates a focused text input. charLimit <= 0 means no limit.
func NewTextInput(p Palette, label, placeholder string, charLimit int, validateFn func(string) error) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Cursor.Style = p.fg(p.Accent)
	ti.Focus()

	return TextInput{
		Label:      label,
		input:      ti,
		validateFn: validateFn,
		palette:    p,
		kbd:        newKeyHelp(p, inputKeys),
	}
}

// Init starts the cursor blinking and re-arms a submitted input.
func (t *TextInput) Init() tea.Cmd {
	t.done = false
	return textinput.Blink
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.done {
		return t, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if t.validateFn != nil {
			if err := t.validateFn(t.Value()); err != nil {
				t.err = err.Error()
				return t, nil
			}
		}
		t.done = true
		t.err = ""
		return t, nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.err = ""
	return t, cmd
}

// View renders the text input.
func (t TextInput) View(width int) string {
	var b strings.Builder

	b.WriteString("\n  " + t.palette.Label.Render(t.Label) + "\n\n")

	inputWidth := clampWidth(width, 8, 20)
	t.input.Width = inputWidth
	b.WriteString("  " + t.palette.InactiveBorder.Width(inputWidth).Render(t.input.View()) + "\n")

	if t.err != "" {
		b.WriteString("  " + t.palette.Error.Render("✗ "+t.err) + "\n")
	}
	if t.Hint != nil {
		if hint := t.Hint(t.Value()); hint != "" {
			b.WriteString("  " + t.palette.Hint.Render(hint) + "\n")
		}
	}

	b.WriteString("\n" + t.kbd.View())
	return b.String()
}

// Err returns the last validation message, if any.
func (t TextInput) Err() string {
	return t.err
}

// Done returns true when input is submitted.
func (t TextInput) Done() bool {
	return t.done
}

// Value returns the current input value with surrounding space trimmed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.input.Value())
}

// SetValue sets the input value.
func (t *TextInput) SetValue(v string) {
	t.input.SetValue(v)
}
