package wizard

import (
	"context"

	"github.com/mark3labs/corewizard/internal/logger"
)

// Controller drives a wizard: it answers the host's tab-change requests and
// runs the finish handlers when the user completes the wizard.
//
// The controller holds no UI state. The host owns the active tab and refers
// to it by key. All methods return without waiting on I/O.
type Controller struct {
	registry *Registry
	dialog   Dialog
}

// NewController creates a controller over an assembled registry.
// A nil dialog discards validation messages.
func NewController(registry *Registry, dialog Dialog) *Controller {
	if dialog == nil {
		dialog = DialogFunc(func(string, string) {})
	}
	return &Controller{
		registry: registry,
		dialog:   dialog,
	}
}

// Registry returns the controller's steps.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// CheckLeave reports why the tab from cannot be left, without showing
// anything. It returns nil when navigation is allowed.
func (c *Controller) CheckLeave(from string) *ValidationError {
	step, ok := c.registry.Owner(from)
	if !ok {
		return nil
	}
	guard, ok := step.(LeaveGuard)
	if !ok {
		return nil
	}
	return guard.ValidateLeave()
}

// RequestLeave is called by the host before every tab change. Only steps
// that implement LeaveGuard can block; when one does, every failed check is
// shown through the dialog and false is returned.
func (c *Controller) RequestLeave(from, to string) bool {
	verr := c.CheckLeave(from)
	if verr == nil {
		logger.Debug("Tab change %q -> %q allowed", from, to)
		return true
	}

	logger.Info("Tab change %q -> %q blocked: %v", from, to, verr.Problems)
	c.dialog.ShowMessage(verr.Title, verr.Message())
	return false
}

// Finish runs every finish handler in registration order and returns the
// aggregated reload decision together with the work the handlers launched.
//
// Handlers are not serialized against each other's asynchronous work: the
// decision reflects each step's stated intent and is returned while
// submissions may still be in flight.
func (c *Controller) Finish(ctx context.Context) (Outcome, *Pending) {
	pending := newPending(ctx)
	decision := OutcomeNone

	for _, step := range c.registry.steps {
		finisher, ok := step.(Finisher)
		if !ok {
			continue
		}
		outcome := finisher.OnFinish(ctx, pending)
		logger.Debug("Step %s finished with outcome %s", step.Key(), outcome)
		decision = decision.Merge(outcome)
	}

	logger.Info("Wizard finished: decision=%s tasks=%d", decision, len(pending.Tasks()))
	return decision, pending.seal()
}

// Start runs every enter handler once, in registration order. The returned
// handle tracks the loads they launched.
func (c *Controller) Start(ctx context.Context) *Pending {
	pending := newPending(ctx)

	for _, step := range c.registry.steps {
		if enterer, ok := step.(Enterer); ok {
			logger.Debug("Entering step %s", step.Key())
			enterer.OnEnter(ctx, pending)
		}
	}

	return pending.seal()
}
