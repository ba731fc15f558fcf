package wizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/corewizard/internal/steps"
)

const (
	aclFocusToggle = iota
	aclFocusUsername
	aclFocusPassword
	aclFocusConfirm
	aclFocusCount
)

// aclView renders the access control form.
type aclView struct {
	step *steps.AclStep

	username textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focus    int
	width    int
}

func newACLView(step *steps.AclStep) *aclView {
	v := &aclView{
		step:     step,
		username: newInput("Username"),
		password: newInput("Password"),
		confirm:  newInput("Confirm password"),
		width:    60,
	}
	v.password.EchoMode = textinput.EchoPassword
	v.password.EchoCharacter = '•'
	v.confirm.EchoMode = textinput.EchoPassword
	v.confirm.EchoCharacter = '•'

	user, pass, confirm := step.Credentials()
	v.username.SetValue(user)
	v.password.SetValue(pass)
	v.confirm.SetValue(confirm)
	return v
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        styleDialogText,
			Placeholder: styleMuted,
		},
		Blurred: textinput.StyleState{
			Text:        styleLabel,
			Placeholder: styleMuted,
		},
		Cursor: textinput.CursorStyle{
			Color: colorPrimary,
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	in.SetWidth(40)
	return in
}

func (v *aclView) Key() string { return steps.KeyACL }
func (v *aclView) Title() string { return "Access Control" }

// Editing reports whether a text field has focus, in which case the arrow
// keys belong to the field.
func (v *aclView) Editing() bool {
	return v.focus != aclFocusToggle
}

func (v *aclView) Focus() tea.Cmd {
	return v.setFocus(v.focus)
}

func (v *aclView) Blur() {
	v.username.Blur()
	v.password.Blur()
	v.confirm.Blur()
}

func (v *aclView) SetSize(width, height int) {
	v.width = width
	w := width - 24
	if w < 10 {
		w = 10
	}
	v.username.SetWidth(w)
	v.password.SetWidth(w)
	v.confirm.SetWidth(w)
}

func (v *aclView) setFocus(i int) tea.Cmd {
	v.Blur()
	v.focus = i
	switch i {
	case aclFocusUsername:
		return v.username.Focus()
	case aclFocusPassword:
		return v.password.Focus()
	case aclFocusConfirm:
		return v.confirm.Focus()
	}
	return nil
}

func (v *aclView) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		disabled := v.step.Mode() == steps.ModeDisabled
		switch key.String() {
		case "up", "down":
			if disabled {
				return v.setFocus(aclFocusToggle)
			}
		}
		switch key.String() {
		case "up":
			return v.setFocus((v.focus + aclFocusCount - 1) % aclFocusCount)
		case "down", "enter":
			if v.focus == aclFocusToggle && key.String() == "enter" {
				v.toggle()
				return nil
			}
			return v.setFocus((v.focus + 1) % aclFocusCount)
		case "space", " ":
			if v.focus == aclFocusToggle {
				v.toggle()
				return nil
			}
		}
	}

	if v.step.Mode() == steps.ModeDisabled {
		return nil
	}

	var cmd tea.Cmd
	switch v.focus {
	case aclFocusUsername:
		v.username, cmd = v.username.Update(msg)
		v.step.SetUsername(v.username.Value())
	case aclFocusPassword:
		v.password, cmd = v.password.Update(msg)
		v.step.SetPassword(v.password.Value())
	case aclFocusConfirm:
		v.confirm, cmd = v.confirm.Update(msg)
		v.step.SetConfirmedPassword(v.confirm.Value())
	}
	return cmd
}

// Refresh re-reads the form after the step changed outside the view.
func (v *aclView) Refresh() {
	user, pass, confirm := v.step.Credentials()
	syncInput(&v.username, user)
	syncInput(&v.password, pass)
	syncInput(&v.confirm, confirm)
}

func syncInput(in *textinput.Model, value string) {
	if in.Value() != value {
		in.SetValue(value)
	}
}

func (v *aclView) toggle() {
	if v.step.Mode() == steps.ModeEnabled {
		v.step.SetMode(steps.ModeDisabled)
		v.username.SetValue("")
		v.password.SetValue("")
		v.confirm.SetValue("")
		return
	}
	v.step.SetMode(steps.ModeEnabled)
}

func (v *aclView) View() string {
	var b strings.Builder
	enabled := v.step.Mode() == steps.ModeEnabled

	b.WriteString(styleLabel.Render("Access control restricts the interface to the user you create here."))
	b.WriteString("\n\n")
	b.WriteString(renderToggle("Use access control", enabled, v.focus == aclFocusToggle))
	b.WriteString("\n\n")

	if enabled {
		rows := []struct {
			label string
			input textinput.Model
			focus int
		}{
			{"Username", v.username, aclFocusUsername},
			{"Password", v.password, aclFocusPassword},
			{"Confirm", v.confirm, aclFocusConfirm},
		}
		for _, r := range rows {
			style := styleLabel
			if v.focus == r.focus {
				style = styleLabelFocused
			}
			b.WriteString("  " + style.Width(12).Render(r.label) + " " + r.input.View() + "\n")
		}
		b.WriteString("\n")
		b.WriteString(v.validity())
	} else {
		b.WriteString(styleNotice.Render("Anyone who can reach this server will have full control over it."))
	}

	b.WriteString("\n\n")
	if d := v.step.Decision(); d.Committed() {
		b.WriteString(styleOK.Render("✓ Access control choice saved on the server"))
		return b.String()
	}
	b.WriteString(styleMuted.Render("Finishing will " + v.step.Status() + "."))
	return b.String()
}

func (v *aclView) validity() string {
	verr := v.step.ValidateLeave()
	if verr == nil {
		return styleOK.Render("✓ Credentials look good")
	}
	lines := make([]string, 0, len(verr.Problems))
	for _, p := range verr.Problems {
		lines = append(lines, styleProblem.Render("✗ "+p))
	}
	return strings.Join(lines, "\n")
}

func (v *aclView) Hints() []string {
	if v.focus == aclFocusToggle {
		return []string{"space", "toggle", "↑↓", "fields"}
	}
	return []string{"↑↓", "fields"}
}
