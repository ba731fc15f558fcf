package wizard

import (
	"sync"

	tea "charm.land/bubbletea/v2"
)

// refreshMsg asks the model to re-read step state changed outside the
// update loop.
type refreshMsg struct{}

// Notifier forwards step change notifications into a running program. Its
// Notify method is handed to steps.WithNotify when the steps are built,
// before the program exists; notifications that arrive before Attach are
// dropped.
type Notifier struct {
	mu      sync.Mutex
	program *tea.Program
	sent    int
}

// NewNotifier creates a detached notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Attach routes later notifications to p.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.program = p
}

// Notify may be called from any goroutine. Steps also notify from inside
// the update loop (a toggle in a view), so the send runs in its own
// goroutine; Program.Send would otherwise block on the loop it is called
// from.
func (n *Notifier) Notify() {
	if n == nil {
		return
	}
	n.mu.Lock()
	p := n.program
	if p != nil {
		n.sent++
	}
	n.mu.Unlock()

	if p == nil {
		return
	}
	go p.Send(refreshMsg{})
}

// Sent returns how many notifications were forwarded.
func (n *Notifier) Sent() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent
}
