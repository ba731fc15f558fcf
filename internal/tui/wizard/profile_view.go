package wizard

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/profile"
	"github.com/mark3labs/corewizard/internal/steps"
)

// profileEditedMsg is sent when the external editor exits.
type profileEditedMsg struct {
	path string
	err  error
}

// profileView shows the default printer profile as YAML.
type profileView struct {
	step   *steps.ProfileStep
	editor *profile.Editor

	viewport viewport.Model
	showDiff bool
	notice   string
	width    int
}

func newProfileView(step *steps.ProfileStep, editor *profile.Editor) *profileView {
	v := &profileView{
		step:     step,
		editor:   editor,
		viewport: viewport.New(viewport.WithWidth(60), viewport.WithHeight(10)),
		width:    60,
	}
	v.Refresh()
	return v
}

func (v *profileView) Key() string { return steps.KeyPrinterProfile }
func (v *profileView) Title() string { return "Printer Profile" }
func (v *profileView) Focus() tea.Cmd { return nil }
func (v *profileView) Blur() {}

func (v *profileView) SetSize(width, height int) {
	v.width = width
	v.viewport.SetWidth(width)
	v.viewport.SetHeight(height - 2)
	v.Refresh()
}

// Refresh rebuilds the viewport from the editor.
func (v *profileView) Refresh() {
	switch {
	case !v.step.Loaded():
		v.viewport.SetContent(styleMuted.Render("Loading the default printer profile…"))
	case v.showDiff:
		diff := v.editor.Diff()
		if diff == "" {
			diff = styleMuted.Render("No changes.")
		}
		v.viewport.SetContent(diff)
	default:
		v.viewport.SetContent(v.editor.Text())
	}
}

func (v *profileView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileEditedMsg:
		if msg.err != nil {
			v.notice = "Editor failed: " + msg.err.Error()
			return nil
		}
		if err := v.editor.ApplyFile(msg.path); err != nil {
			logger.Warn("Rejected profile edit: %v", err)
			v.notice = err.Error()
		} else {
			v.notice = ""
		}
		v.Refresh()
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "e":
			if !v.step.Loaded() {
				return nil
			}
			return v.edit()
		case "d":
			v.showDiff = !v.showDiff
			v.Refresh()
			v.viewport.GotoTop()
			return nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

func (v *profileView) edit() tea.Cmd {
	cmd, path, err := v.editor.EditCommand()
	if err != nil {
		v.notice = err.Error()
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return profileEditedMsg{path: path, err: err}
	})
}

func (v *profileView) View() string {
	var b strings.Builder

	header := "Default profile"
	if v.showDiff {
		header = "Changes to the default profile"
	}
	if v.editor.Dirty() {
		header += styleNotice.Render(" (modified)")
	}
	b.WriteString(styleLabel.Render(header))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(styleProblem.Render(v.notice))
	}
	return b.String()
}

func (v *profileView) Hints() []string {
	diff := "diff"
	if v.showDiff {
		diff = "profile"
	}
	return []string{"e", "edit", "d", diff, "↑↓", "scroll"}
}
