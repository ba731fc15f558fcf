// Package wizard is the interactive terminal host for the first-run setup
// wizard.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/profile"
	"github.com/mark3labs/corewizard/internal/steps"
	core "github.com/mark3labs/corewizard/internal/wizard"
)

// ErrCancelled is returned by Run when the user quits without finishing.
var ErrCancelled = errors.New("wizard cancelled by user")

// Steps are the step instances the host renders. Nil steps get no tab.
type Steps struct {
	ACL      *steps.AclStep
	SSH      *steps.ShellAccessStep
	Camera   *steps.CameraStep
	Commands *steps.ServerCommandsStep
	Profile  *steps.ProfileStep
	Editor   *profile.Editor
}

// Result is what the wizard produced.
type Result struct {
	Outcome core.Outcome
	Pending *core.Pending
}

// startedMsg reports that the enter handlers' loads completed.
type startedMsg struct {
	err error
}

// Model is the Bubble Tea model of the wizard.
type Model struct {
	ctx        context.Context
	controller *core.Controller
	dialog     *Dialog

	views  []stepView
	active int

	width  int
	height int
	status string

	finished  bool
	cancelled bool
	result    Result
}

// New creates the model. dialog must be the one the controller was built
// with so blocked tab changes show up in the UI.
func New(ctx context.Context, controller *core.Controller, dialog *Dialog, s Steps) *Model {
	m := &Model{
		ctx:        ctx,
		controller: controller,
		dialog:     dialog,
		width:      100,
		height:     30,
	}

	if s.ACL != nil {
		m.views = append(m.views, newACLView(s.ACL))
	}
	if s.SSH != nil {
		m.views = append(m.views, &shellView{step: s.SSH})
	}
	if s.Camera != nil {
		m.views = append(m.views, &cameraView{step: s.Camera})
	}
	if s.Commands != nil {
		m.views = append(m.views, newCommandsView(s.Commands))
	}
	if s.Profile != nil && s.Editor != nil {
		m.views = append(m.views, newProfileView(s.Profile, s.Editor))
	}
	return m
}

// Run runs the wizard until the user finishes or cancels. notifier, when
// set, must be the one whose Notify the steps were built with.
func Run(ctx context.Context, controller *core.Controller, dialog *Dialog, notifier *Notifier, s Steps) (*Result, error) {
	m := New(ctx, controller, dialog, s)

	p := tea.NewProgram(m)
	if notifier != nil {
		notifier.Attach(p)
	}
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	wm, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	if !wm.finished {
		return nil, ErrCancelled
	}
	return &wm.result, nil
}

// Init starts the enter handlers and focuses the first tab.
func (m *Model) Init() tea.Cmd {
	pending := m.controller.Start(m.ctx)
	wait := func() tea.Msg {
		return startedMsg{err: pending.Wait()}
	}
	if len(m.views) == 0 {
		return wait
	}
	return tea.Batch(wait, m.views[m.active].Focus())
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case startedMsg:
		if msg.err != nil {
			logger.Warn("Loading wizard data failed: %v", msg.err)
			m.status = "Some data could not be loaded: " + msg.err.Error()
		}
		m.refresh()
		return m, nil

	case refreshMsg:
		m.refresh()
		return m, nil

	case tea.KeyPressMsg:
		if m.dialog.Visible() {
			m.dialog.Update(msg)
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "ctrl+s":
			return m, m.finish()
		case "tab":
			return m, m.move(1)
		case "shift+tab":
			return m, m.move(-1)
		case "left", "right":
			if !m.editing() {
				if msg.String() == "left" {
					return m, m.move(-1)
				}
				return m, m.move(1)
			}
		}
	}

	if len(m.views) == 0 {
		return m, nil
	}
	return m, m.views[m.active].Update(msg)
}

// move requests a change to the tab delta positions away.
func (m *Model) move(delta int) tea.Cmd {
	target := m.active + delta
	if target < 0 || target >= len(m.views) {
		return nil
	}
	return m.switchTo(target)
}

func (m *Model) switchTo(target int) tea.Cmd {
	from := m.views[m.active].Key()
	to := m.views[target].Key()
	if !m.controller.RequestLeave(from, to) {
		return nil
	}
	m.views[m.active].Blur()
	m.active = target
	return m.views[m.active].Focus()
}

// finish treats finishing as leaving the current tab, then runs every
// finish handler and quits.
func (m *Model) finish() tea.Cmd {
	if len(m.views) > 0 && !m.controller.RequestLeave(m.views[m.active].Key(), "") {
		return nil
	}
	outcome, pending := m.controller.Finish(m.ctx)
	m.result = Result{Outcome: outcome, Pending: pending}
	m.finished = true
	return tea.Quit
}

func (m *Model) editing() bool {
	if len(m.views) == 0 {
		return false
	}
	e, ok := m.views[m.active].(textEditor)
	return ok && e.Editing()
}

func (m *Model) refresh() {
	for _, v := range m.views {
		if r, ok := v.(refresher); ok {
			r.Refresh()
		}
	}
}

func (m *Model) resize() {
	w, h := m.contentSize()
	for _, v := range m.views {
		v.SetSize(w, h)
	}
	m.dialog.SetWidth(w)
}

func (m *Model) contentSize() (int, int) {
	w := m.modalWidth() - 6
	h := m.height - 14
	if h < 6 {
		h = 6
	}
	return w, h
}

func (m *Model) modalWidth() int {
	w := m.width - 4
	if w > 110 {
		w = 110
	}
	if w < 50 {
		w = 50
	}
	return w
}

// Active returns the key of the active tab.
func (m *Model) Active() string {
	if len(m.views) == 0 {
		return ""
	}
	return m.views[m.active].Key()
}

// Finished reports whether the user finished the wizard.
func (m *Model) Finished() bool { return m.finished }

// Cancelled reports whether the user quit without finishing.
func (m *Model) Cancelled() bool { return m.cancelled }

// Result returns the wizard's result; only meaningful once finished.
func (m *Model) Result() Result { return m.result }

// View renders the wizard.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(m.render()).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	if m.dialog.Visible() {
		box := m.dialog.View()
		bw, bh := lipgloss.Width(box), lipgloss.Height(box)
		x := max((m.width-bw)/2, 0)
		y := max((m.height-bh)/2, 0)
		uv.NewStyledString(box).Draw(canvas, uv.Rectangle{
			Min: uv.Position{X: x, Y: y},
			Max: uv.Position{X: x + bw, Y: y + bh},
		})
	}

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// render draws the wizard without the dialog overlay.
func (m *Model) render() string {
	var sections []string

	sections = append(sections, styleModalTitle.Render("Setup Wizard"), "")
	sections = append(sections, m.renderTabs(), "")

	if len(m.views) > 0 {
		sections = append(sections, m.views[m.active].View())
	}
	if m.status != "" {
		sections = append(sections, "", styleNotice.Render(m.status))
	}

	bar := NewButtonBar(navigationButtons(m.active, len(m.views)))
	bar.SetWidth(m.modalWidth() - 6)
	sections = append(sections, "", bar.Render())

	hints := []string{"tab", "next", "shift+tab", "prev", "ctrl+s", "finish", "esc", "quit"}
	if len(m.views) > 0 {
		hints = append(m.views[m.active].Hints(), hints...)
	}
	sections = append(sections, "", renderHintBar(hints...))

	modal := styleModalContainer.Width(m.modalWidth()).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(m.views))
	for i, v := range m.views {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if i == m.active {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
