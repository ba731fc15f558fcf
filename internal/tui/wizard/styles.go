package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette (Catppuccin Mocha)
var (
	colorPrimary       = lipgloss.Color("#cba6f7") // Mauve
	colorText          = lipgloss.Color("#cdd6f4") // Text
	colorBase          = lipgloss.Color("#1e1e2e") // Base
	colorSubtext0      = lipgloss.Color("#a6adc8") // Subtext0
	colorSubtext1      = lipgloss.Color("#bac2de") // Subtext1
	colorSurface0      = lipgloss.Color("#313244") // Surface0
	colorSurface2      = lipgloss.Color("#585b70") // Surface2
	colorOverlay0      = lipgloss.Color("#6c7086") // Overlay0
	colorGreen         = lipgloss.Color("#a6e3a1")
	colorRed           = lipgloss.Color("#f38ba8")
	colorYellow        = lipgloss.Color("#f9e2af")
	colorBorderFocused = lipgloss.Color("#b4befe") // Lavender
)

var (
	styleModalContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorderFocused).
				Padding(1, 2)

	styleModalTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleTabActive = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBorderFocused).
			Bold(true).
			Padding(0, 1)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorSubtext0).
				Background(colorSurface0).
				Padding(0, 1)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorSubtext1)

	styleLabelFocused = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	styleOK = lipgloss.NewStyle().
		Foreground(colorGreen)

	styleProblem = lipgloss.NewStyle().
			Foreground(colorRed)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleDialog = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorRed).
			Padding(1, 2)

	styleDialogTitle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	styleDialogText = lipgloss.NewStyle().
			Foreground(colorText)
)

// Hint bar styles
var (
	styleHintKey = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Bold(true)

	styleHintDesc = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	styleHintSeparator = lipgloss.NewStyle().
				Foreground(colorSurface2)
)

// renderHintBar renders key-description pairs.
// Example: renderHintBar("tab", "next", "esc", "quit")
// Returns: "tab next • esc quit"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + styleHintSeparator.Render("•") + " ")
		}
		b.WriteString(styleHintKey.Render(pairs[i]) + " " + styleHintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

// renderToggle renders an on/off switch.
func renderToggle(label string, on, focused bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	style := styleLabel
	if focused {
		style = styleLabelFocused
		box = "> " + box
	} else {
		box = "  " + box
	}
	return style.Render(box + " " + label)
}
