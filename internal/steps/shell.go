package steps

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/wizard"
)

// ShellPayload is what the SSH endpoint receives.
type ShellPayload struct {
	SSH bool `json:"ssh"`
}

// ShellAccessStep lets the user turn remote shell access on.
type ShellAccessStep struct {
	gateway Gateway
	notify  func()

	mu   sync.Mutex
	mode Mode
}

// NewShellAccessStep creates the SSH step. SSH starts disabled.
func NewShellAccessStep(gateway Gateway, opts ...Option) *ShellAccessStep {
	o := buildOptions(opts)
	return &ShellAccessStep{
		gateway: gateway,
		notify:  o.notify,
		mode:    ModeDisabled,
	}
}

// Key implements wizard.Step.
func (s *ShellAccessStep) Key() string { return KeySSH }

// SetMode records the user's choice.
func (s *ShellAccessStep) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	s.notify()
}

// Mode returns the current choice.
func (s *ShellAccessStep) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Status describes what finishing the wizard will do.
func (s *ShellAccessStep) Status() string {
	if s.Mode() == ModeEnabled {
		return "enable SSH"
	}
	return "disable SSH"
}

// OnFinish implements wizard.Finisher. The current choice is always sent,
// even if the user never touched it.
func (s *ShellAccessStep) OnFinish(ctx context.Context, tasks wizard.Tasks) wizard.Outcome {
	payload := ShellPayload{SSH: s.Mode() == ModeEnabled}
	if payload.SSH {
		logger.Info("Enabling SSH")
	} else {
		logger.Info("Keeping SSH disabled")
	}

	tasks.Go("ssh submit", func(ctx context.Context) error {
		if err := s.gateway.Submit(ctx, EndpointSSH, payload); err != nil {
			return fmt.Errorf("submitting ssh access: %w", err)
		}
		return nil
	})

	return wizard.OutcomeReload
}
