// Package wizard orchestrates the first-run setup steps: it gates tab
// navigation on the current step's validity, fires every step's finish
// handler when the wizard completes, and aggregates whether the host has to
// reload its state afterwards.
//
// Steps are plain values identified by a key. What a step can do is
// expressed by the optional interfaces it implements (LeaveGuard, Finisher,
// Enterer); the controller checks for each capability instead of relying on
// a shared base type.
package wizard

import "context"

// Outcome is what a finish handler reports back to the controller.
type Outcome int

const (
	// OutcomeNone means the step needs nothing from the host.
	OutcomeNone Outcome = iota
	// OutcomeReload asks the host to reload all client-held state.
	OutcomeReload
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Merge combines two outcomes; reload wins.
func (o Outcome) Merge(other Outcome) Outcome {
	if o == OutcomeReload || other == OutcomeReload {
		return OutcomeReload
	}
	return OutcomeNone
}

// Step is one tab of the wizard.
type Step interface {
	// Key is the stable identifier of the tab the step renders into.
	Key() string
}

// LeaveGuard is implemented by steps that may block leaving their tab.
type LeaveGuard interface {
	Step
	// ValidateLeave returns nil when the tab may be left, otherwise every
	// failed check.
	ValidateLeave() *ValidationError
}

// Finisher is implemented by steps with work to do when the wizard completes.
//
// OnFinish must not block on I/O. Remote work is handed to tasks and the
// returned outcome states the step's intent, not the result of that work.
type Finisher interface {
	Step
	OnFinish(ctx context.Context, tasks Tasks) Outcome
}

// Enterer is implemented by steps that load data when the wizard starts.
type Enterer interface {
	Step
	OnEnter(ctx context.Context, tasks Tasks)
}

// Tasks launches asynchronous work on behalf of a step.
type Tasks interface {
	// Go runs fn in the background. name identifies the work in logs and
	// in the errors returned by Pending.Wait.
	Go(name string, fn func(ctx context.Context) error)
}

// Dialog is the user-facing message surface used when navigation is blocked.
type Dialog interface {
	ShowMessage(title, message string)
}

// DialogFunc adapts a function to the Dialog interface.
type DialogFunc func(title, message string)

// ShowMessage calls f(title, message).
func (f DialogFunc) ShowMessage(title, message string) {
	f(title, message)
}
