package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/initializ/agentcheck/internal/tui"
)

const defaultWidth = 80

type fdWriter interface {
	Fd() uintptr
}

// stylesFor picks themed or plain styles for output written to w.
func stylesFor(w io.Writer) *tui.StyleSet {
	if !useColor(w) {
		return tui.PlainStyleSet()
	}
	return tui.NewStyleSet(tui.DetectTheme(opts.Theme))
}

func useColor(w io.Writer) bool {
	switch opts.Color {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(w)
}

func isTerminal(v any) bool {
	f, ok := v.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

func termWidth(w io.Writer) int {
	if f, ok := w.(fdWriter); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
