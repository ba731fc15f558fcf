package wizard

import (
	"strings"

	"charm.land/glamour/v2"
)

// markdownStyle is the glamour standard style used for rendering.
var markdownStyle = "dark"

// renderMarkdown renders markdown with glamour, falling back to the raw
// text when rendering fails.
func renderMarkdown(content string, width int) string {
	if width > 120 {
		width = 120
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSuffix(rendered, "\n")
}
