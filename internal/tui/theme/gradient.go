package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Catppuccin Mocha accents used for headings.
const (
	Mauve    = "#cba6f7"
	Lavender = "#b4befe"
)

// ApplyGradient colors each rune of text along a gradient from one hex
// color to another. Spaces are left unstyled.
func ApplyGradient(text, from, to string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		pos := 0.0
		if len(runes) > 1 {
			pos = float64(i) / float64(len(runes)-1)
		}
		color := InterpolateColor(from, to, pos)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
	}
	return b.String()
}
