package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/corewizard/internal/steps"
	core "github.com/mark3labs/corewizard/internal/wizard"
)

// stepView is the UI of one wizard tab.
type stepView interface {
	Key() string
	Title() string
	Focus() tea.Cmd
	Blur()
	SetSize(width, height int)
	Update(msg tea.Msg) tea.Cmd
	View() string
	Hints() []string
}

// textEditor is implemented by views that may own the arrow keys.
type textEditor interface {
	Editing() bool
}

// refresher is implemented by views that rebuild their content when
// background work completes.
type refresher interface {
	Refresh()
}

// shellView renders the SSH toggle.
type shellView struct {
	step *steps.ShellAccessStep
}

func (v *shellView) Key() string { return steps.KeySSH }
func (v *shellView) Title() string { return "SSH" }
func (v *shellView) Focus() tea.Cmd { return nil }
func (v *shellView) Blur() {}
func (v *shellView) SetSize(width, height int) {}

func (v *shellView) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "space", " ", "enter":
			v.step.SetMode(steps.ModeOf(v.step.Mode() != steps.ModeEnabled))
		}
	}
	return nil
}

func (v *shellView) View() string {
	var b strings.Builder
	enabled := v.step.Mode() == steps.ModeEnabled
	b.WriteString(styleLabel.Render("SSH gives remote shell access to the machine running the server."))
	b.WriteString("\n\n")
	b.WriteString(renderToggle("Enable SSH", enabled, true))
	b.WriteString("\n\n")
	b.WriteString(styleMuted.Render("Finishing will " + v.step.Status() + "."))
	return b.String()
}

func (v *shellView) Hints() []string { return []string{"space", "toggle"} }

// cameraView summarizes the camera settings.
type cameraView struct {
	step *steps.CameraStep
}

func (v *cameraView) Key() string { return steps.KeyWebcam }
func (v *cameraView) Title() string { return "Webcam" }
func (v *cameraView) Focus() tea.Cmd { return nil }
func (v *cameraView) Blur() {}
func (v *cameraView) SetSize(width, height int) {}
func (v *cameraView) Update(msg tea.Msg) tea.Cmd { return nil }
func (v *cameraView) Hints() []string { return nil }

func (v *cameraView) View() string {
	var b strings.Builder
	b.WriteString(styleLabel.Render("Camera settings"))
	b.WriteString("\n\n")

	s := v.step.Settings()
	if s == nil {
		b.WriteString(styleMuted.Render("No camera settings available."))
		return b.String()
	}

	for _, row := range []struct{ label, value string }{
		{"Stream URL", s.StreamURL()},
		{"Snapshot URL", s.SnapshotURL()},
		{"ffmpeg", s.FFmpegPath()},
	} {
		value := row.value
		if value == "" {
			value = styleMuted.Render("not set")
		}
		fmt.Fprintf(&b, "  %s %s\n", styleLabel.Width(14).Render(row.label), value)
	}
	b.WriteString("\n")

	if v.step.Intent() == core.OutcomeReload {
		b.WriteString(styleOK.Render("The interface will reload on finish to pick up the camera."))
	} else {
		b.WriteString(styleMuted.Render("The camera is not usable yet; nothing to apply."))
	}
	return b.String()
}

// commandsView shows the configured server commands as markdown.
type commandsView struct {
	step     *steps.ServerCommandsStep
	viewport viewport.Model
	width    int
}

func newCommandsView(step *steps.ServerCommandsStep) *commandsView {
	v := &commandsView{
		step:     step,
		viewport: viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
		width:    60,
	}
	v.viewport.SetContent(renderMarkdown(step.Markdown(), v.width))
	return v
}

func (v *commandsView) Key() string { return steps.KeyServerCommands }
func (v *commandsView) Title() string { return "Server Commands" }
func (v *commandsView) Focus() tea.Cmd { return nil }
func (v *commandsView) Blur() {}

func (v *commandsView) SetSize(width, height int) {
	v.width = width
	v.viewport.SetWidth(width)
	v.viewport.SetHeight(height)
	v.viewport.SetContent(renderMarkdown(v.step.Markdown(), width))
}

func (v *commandsView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

func (v *commandsView) View() string { return v.viewport.View() }
func (v *commandsView) Hints() []string { return []string{"↑↓", "scroll"} }
