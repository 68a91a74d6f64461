// Package tui renders agentcheck's terminal output and the init wizard.
package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EnvTheme names the environment variable that selects a theme when
// --theme is not given.
const EnvTheme = "AGENTCHECK_THEME"

// Theme is the color scheme. Pass, Warn and Fail color diagnostics by
// severity; the rest color the wizard.
type Theme struct {
	Name string

	Brand    lipgloss.Color
	BrandDim lipgloss.Color

	Pass lipgloss.Color
	Warn lipgloss.Color
	Fail lipgloss.Color

	Text   lipgloss.Color
	Subtle lipgloss.Color
	Muted  lipgloss.Color
	Frame  lipgloss.Color
}

// DarkTheme suits dark terminal backgrounds and is the default.
var DarkTheme = Theme{
	Name:     "dark",
	Brand:    "#a78bfa",
	BrandDim: "#6d28d9",
	Pass:     "#4ade80",
	Warn:     "#fbbf24",
	Fail:     "#f87171",
	Text:     "#f4f4f5",
	Subtle:   "#a1a1aa",
	Muted:    "#71717a",
	Frame:    "#3f3f46",
}

// LightTheme suits light terminal backgrounds.
var LightTheme = Theme{
	Name:     "light",
	Brand:    "#6d28d9",
	BrandDim: "#4c1d95",
	Pass:     "#166534",
	Warn:     "#92400e",
	Fail:     "#991b1b",
	Text:     "#18181b",
	Subtle:   "#3f3f46",
	Muted:    "#52525b",
	Frame:    "#d4d4d8",
}

var themes = map[string]Theme{
	DarkTheme.Name:  DarkTheme,
	LightTheme.Name: LightTheme,
}

// DetectTheme picks the first of: the --theme value, $AGENTCHECK_THEME, and
// the background reported in $COLORFGBG. Unknown names are skipped and the
// dark theme is the fallback.
func DetectTheme(flagVal string) Theme {
	for _, name := range []string{flagVal, os.Getenv(EnvTheme), backgroundTheme(os.Getenv("COLORFGBG"))} {
		if t, ok := themes[strings.ToLower(name)]; ok {
			return t
		}
	}
	return DarkTheme
}

// backgroundTheme reads "fg;bg" (rxvt style). ANSI 7 and 15 are the white
// backgrounds.
func backgroundTheme(colorfgbg string) string {
	i := strings.LastIndexByte(colorfgbg, ';')
	if i < 0 {
		return ""
	}
	switch colorfgbg[i+1:] {
	case "7", "15":
		return LightTheme.Name
	}
	return DarkTheme.Name
}

// StyleSet holds the styles everything in this package renders with.
type StyleSet struct {
	Theme Theme

	// Diagnostics.
	Pass     lipgloss.Style
	Warn     lipgloss.Style
	Fail     lipgloss.Style
	Pointer  lipgloss.Style
	Position lipgloss.Style
	KindTag  lipgloss.Style

	// Text.
	Text      lipgloss.Style
	Subtle    lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style

	// Wizard chrome.
	Wordmark     lipgloss.Style
	Version      lipgloss.Style
	Tagline      lipgloss.Style
	FocusFrame   lipgloss.Style
	Frame        lipgloss.Style
	Key          lipgloss.Style
	KeyAction    lipgloss.Style
	DoneBadge    lipgloss.Style
	CurrentBadge lipgloss.Style

	// Summary boxes.
	FieldName  lipgloss.Style
	FieldValue lipgloss.Style
	Box        lipgloss.Style
}

const (
	fieldNameWidth = 16
	badgeText      = lipgloss.Color("#ffffff")
)

// NewStyleSet derives colored styles from theme.
func NewStyleSet(theme Theme) *StyleSet {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	badge := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Background(c).Foreground(badgeText).Bold(true)
	}
	frame := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c)
	}

	return &StyleSet{
		Theme: theme,

		Pass:     fg(theme.Pass),
		Warn:     fg(theme.Warn),
		Fail:     fg(theme.Fail).Bold(true),
		Pointer:  fg(theme.Brand),
		Position: fg(theme.Muted),
		KindTag:  fg(theme.Subtle).Italic(true),

		Text:      fg(theme.Text),
		Subtle:    fg(theme.Subtle),
		Muted:     fg(theme.Muted),
		Highlight: fg(theme.Brand),

		Wordmark:     fg(theme.Brand).Bold(true),
		Version:      badge(theme.BrandDim).Bold(false).Padding(0, 1),
		Tagline:      fg(theme.Subtle),
		FocusFrame:   frame(theme.Brand),
		Frame:        frame(theme.Frame),
		Key:          fg(theme.Text).Background(theme.Frame).Padding(0, 1),
		KeyAction:    fg(theme.Muted),
		DoneBadge:    badge(theme.Pass),
		CurrentBadge: badge(theme.Brand),

		FieldName:  fg(theme.Subtle).Width(fieldNameWidth),
		FieldValue: fg(theme.Text).Bold(true),
		Box:        frame(theme.Frame).Padding(0, 1),
	}
}

// PlainStyleSet returns styles that render text unchanged, for piped output
// and --color never. Field names keep their width so summaries stay aligned.
func PlainStyleSet() *StyleSet {
	p := lipgloss.NewStyle()
	return &StyleSet{
		Theme:        Theme{Name: "plain"},
		Pass:         p,
		Warn:         p,
		Fail:         p,
		Pointer:      p,
		Position:     p,
		KindTag:      p,
		Text:         p,
		Subtle:       p,
		Muted:        p,
		Highlight:    p,
		Wordmark:     p,
		Version:      p,
		Tagline:      p,
		FocusFrame:   p,
		Frame:        p,
		Key:          p,
		KeyAction:    p,
		DoneBadge:    p,
		CurrentBadge: p,
		FieldName:    p.Width(fieldNameWidth),
		FieldValue:   p,
		Box:          p,
	}
}
