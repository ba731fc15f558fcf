package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar lays out a row of buttons centered in its width.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

var (
	styleButtonNormal = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSurface0).
				Padding(0, 2).
				MarginLeft(1).
				MarginRight(1)

	styleButtonDisabled = lipgloss.NewStyle().
				Foreground(colorOverlay0).
				Padding(0, 2).
				MarginLeft(1).
				MarginRight(1)

	styleButtonFocused = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorBorderFocused).
				Bold(true).
				Padding(0, 2).
				MarginLeft(1).
				MarginRight(1)
)

// Render renders the button bar.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, styleButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, styleButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, styleButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.PlaceHorizontal(b.width, lipgloss.Center, strings.Join(rendered, ""))
}

// navigationButtons returns the Prev/Next/Finish set for the tab at index
// active out of count. Finish is highlighted on the last tab.
func navigationButtons(active, count int) []Button {
	prev := ButtonNormal
	if active == 0 {
		prev = ButtonDisabled
	}
	next := ButtonNormal
	finish := ButtonNormal
	if active == count-1 {
		next = ButtonDisabled
		finish = ButtonFocused
	}
	return []Button{
		{Label: "← Prev", State: prev},
		{Label: "Next →", State: next},
		{Label: "Finish", State: finish},
	}
}
