package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Key is one shortcut listed under a wizard screen.
type Key struct {
	Key    string
	Action string
}

var (
	keyMove = Key{Key: "↑/↓", Action: "move"}
	keyQuit = Key{Key: "esc", Action: "cancel"}
)

// Shortcut sets for each kind of screen. Every set ends with cancel.
var (
	selectKeys = []Key{keyMove, {Key: "enter", Action: "choose"}, keyQuit}
	toggleKeys = []Key{keyMove, {Key: "space", Action: "toggle"}, {Key: "enter", Action: "done"}, keyQuit}
	inputKeys  = []Key{{Key: "enter", Action: "next"}, keyQuit}
	reviewKeys = []Key{{Key: "enter", Action: "write agent file"}, {Key: "backspace", Action: "edit"}, keyQuit}
)

// KeyHelp renders a single line of shortcuts.
type KeyHelp struct {
	keys   []Key
	key    lipgloss.Style
	action lipgloss.Style
}

func newKeyHelp(p Palette, keys []Key) KeyHelp {
	return KeyHelp{keys: keys, key: p.KbdKey, action: p.KbdDesc}
}

// ReviewKeyHelp is the shortcut line of the final review screen.
func ReviewKeyHelp(p Palette) KeyHelp { return newKeyHelp(p, reviewKeys) }

// View renders the shortcuts separated by dots.
func (h KeyHelp) View() string {
	var b strings.Builder
	b.WriteString("  ")
	for i, k := range h.keys {
		if i > 0 {
			b.WriteString(h.action.Render("  ·  "))
		}
		b.WriteString(h.key.Render(k.Key) + " " + h.action.Render(k.Action))
	}
	return b.String()
}
