package tui

import "strings"

const (
	minRule = 20
	maxRule = 60
)

// RenderBanner returns the header shown above the init wizard. version may
// carry a leading "v"; an empty version renders as "dev".
func RenderBanner(styles *StyleSet, version string, width int) string {
	version = strings.TrimPrefix(version, "v")
	if version == "" {
		version = "dev"
	} else {
		version = "v" + version
	}

	rule := min(max(width-4, minRule), maxRule)
	lines := []string{
		styles.Wordmark.Render("agentcheck") + " " + styles.Version.Render(version),
		styles.Tagline.Render("Answer a few questions to write a valid agent file."),
		styles.Muted.Render(strings.Repeat("─", rule)),
	}
	return "  " + strings.Join(lines, "\n  ") + "\n\n"
}
