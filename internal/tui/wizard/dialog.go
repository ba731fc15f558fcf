package wizard

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Dialog is the modal shown when a tab cannot be left. It implements the
// controller's message surface; ShowMessage must be called from the Bubble
// Tea update loop.
type Dialog struct {
	title   string
	message string
	visible bool
	width   int
}

// NewDialog creates a hidden dialog.
func NewDialog() *Dialog {
	return &Dialog{width: 60}
}

// ShowMessage displays title and message until dismissed.
func (d *Dialog) ShowMessage(title, message string) {
	d.title = title
	d.message = message
	d.visible = true
}

// Hide closes the dialog.
func (d *Dialog) Hide() {
	d.visible = false
}

// Visible reports whether the dialog is shown.
func (d *Dialog) Visible() bool {
	return d.visible
}

// Title returns the current title.
func (d *Dialog) Title() string { return d.title }

// Message returns the current message.
func (d *Dialog) Message() string { return d.message }

// SetWidth caps the dialog width.
func (d *Dialog) SetWidth(width int) {
	d.width = width
}

// Update dismisses the dialog on enter, space or esc. It reports whether
// the message was consumed.
func (d *Dialog) Update(msg tea.Msg) bool {
	if !d.visible {
		return false
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter", "space", " ", "esc":
			d.Hide()
		}
		return true
	}
	return false
}

// View renders the dialog box.
func (d *Dialog) View() string {
	if !d.visible {
		return ""
	}

	width := d.width
	if width > 64 {
		width = 64
	}
	if width < 30 {
		width = 30
	}
	inner := width - 6

	title := styleDialogTitle.Width(inner).Render(d.title)
	message := styleDialogText.Width(inner).Render(d.message)
	button := styleButtonFocused.Render("OK")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		message,
		"",
		lipgloss.PlaceHorizontal(inner, lipgloss.Center, button),
	)
	return styleDialog.Width(width).Render(content)
}
