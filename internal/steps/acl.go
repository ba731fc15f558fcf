package steps

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/wizard"
)

// Validation problems reported by the access control step.
const (
	ProblemUsername = "Invalid username"
	ProblemPassword = "Invalid password"
	ProblemMismatch = "Password mismatch"
)

const (
	aclDialogTitle = "Please properly setup Access Control"
	aclDialogIntro = "Please look over the username and password form."
)

// AclPayload is what the access control endpoint receives.
type AclPayload struct {
	AccessControl bool   `json:"ac"`
	User          string `json:"user,omitempty"`
	Pass1         string `json:"pass1,omitempty"`
	Pass2         string `json:"pass2,omitempty"`
}

// Decision records that the access control choice reached the server.
// The zero value is unset.
type Decision struct {
	committed bool
	enabled   bool
}

// Committed reports whether the choice was submitted successfully.
func (d Decision) Committed() bool { return d.committed }

// AccessControl is the submitted choice; only meaningful when committed.
func (d Decision) AccessControl() bool { return d.enabled }

// AclStep collects the admin credentials, or the decision to run without
// access control.
type AclStep struct {
	gateway Gateway
	session SessionService
	notify  func()

	mu                sync.Mutex
	username          string
	password          string
	confirmedPassword string
	mode              Mode
	decision          Decision
	inflight          bool
}

// NewAclStep creates the access control step. Access control starts enabled.
func NewAclStep(gateway Gateway, session SessionService, opts ...Option) *AclStep {
	o := buildOptions(opts)
	return &AclStep{
		gateway: gateway,
		session: session,
		notify:  o.notify,
		mode:    ModeEnabled,
	}
}

// Key implements wizard.Step.
func (s *AclStep) Key() string { return KeyACL }

// SetUsername updates the username field.
func (s *AclStep) SetUsername(v string) {
	s.mu.Lock()
	s.username = v
	s.mu.Unlock()
	s.notify()
}

// SetPassword updates the password field.
func (s *AclStep) SetPassword(v string) {
	s.mu.Lock()
	s.password = v
	s.mu.Unlock()
	s.notify()
}

// SetConfirmedPassword updates the confirmation field.
func (s *AclStep) SetConfirmedPassword(v string) {
	s.mu.Lock()
	s.confirmedPassword = v
	s.mu.Unlock()
	s.notify()
}

// SetMode switches access control on or off. Switching it off clears every
// credential field.
func (s *AclStep) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	if m == ModeDisabled {
		s.username = ""
		s.password = ""
		s.confirmedPassword = ""
	}
	s.mu.Unlock()
	s.notify()
}

// Mode returns the current choice.
func (s *AclStep) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Credentials returns the current field values.
func (s *AclStep) Credentials() (username, password, confirmed string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username, s.password, s.confirmedPassword
}

// Status describes what finishing the wizard will do.
func (s *AclStep) Status() string {
	if s.Mode() == ModeEnabled {
		return "enable Access Control"
	}
	return "disable Access Control"
}

// Decision returns whether the choice has been committed.
func (s *AclStep) Decision() Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decision
}

// ValidUsername reports whether the username has non-space characters.
func (s *AclStep) ValidUsername() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.username) != ""
}

// ValidPassword reports whether the password has non-space characters.
func (s *AclStep) ValidPassword() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.password) != ""
}

// PasswordsMatch compares password and confirmation exactly.
func (s *AclStep) PasswordsMatch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.password == s.confirmedPassword
}

// ValidData reports whether the credentials can be submitted.
func (s *AclStep) ValidData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validLocked()
}

// CanLeave reports whether the tab may be left.
func (s *AclStep) CanLeave() bool {
	return s.Mode() == ModeDisabled || s.ValidData()
}

// ValidateLeave implements wizard.LeaveGuard.
func (s *AclStep) ValidateLeave() *wizard.ValidationError {
	if s.CanLeave() {
		return nil
	}

	var problems []string
	if !s.ValidUsername() {
		problems = append(problems, ProblemUsername)
	}
	if !s.ValidPassword() {
		problems = append(problems, ProblemPassword)
	}
	if !s.PasswordsMatch() {
		problems = append(problems, ProblemMismatch)
	}

	return &wizard.ValidationError{
		Title:    aclDialogTitle,
		Intro:    aclDialogIntro,
		Problems: problems,
	}
}

// OnFinish implements wizard.Finisher. It submits the choice once per
// session and asks for a reload until the choice is committed.
func (s *AclStep) OnFinish(ctx context.Context, tasks wizard.Tasks) wizard.Outcome {
	s.mu.Lock()
	if s.decision.committed {
		s.mu.Unlock()
		logger.Debug("Access control already submitted, skipping")
		return wizard.OutcomeNone
	}
	if s.inflight {
		// The decision is still unset, so the reload stands; the running
		// submission is not duplicated.
		s.mu.Unlock()
		logger.Debug("Access control submission in flight, not resubmitting")
		return wizard.OutcomeReload
	}

	payload := AclPayload{AccessControl: s.mode == ModeEnabled}
	if payload.AccessControl {
		if !s.validLocked() {
			s.mu.Unlock()
			logger.Warn("Access control enabled with invalid credentials, nothing submitted")
			return wizard.OutcomeReload
		}
		payload.User = s.username
		payload.Pass1 = s.password
		payload.Pass2 = s.confirmedPassword
	}
	s.inflight = true
	s.mu.Unlock()

	if payload.AccessControl {
		logger.Info("Enabling access control for %s", payload.User)
	} else {
		logger.Info("Disabling access control")
	}
	tasks.Go("acl submit", func(ctx context.Context) error {
		return s.send(ctx, payload)
	})

	return wizard.OutcomeReload
}

func (s *AclStep) validLocked() bool {
	return s.password == s.confirmedPassword &&
		strings.TrimSpace(s.username) != "" &&
		strings.TrimSpace(s.password) != ""
}

func (s *AclStep) send(ctx context.Context, payload AclPayload) error {
	err := s.gateway.Submit(ctx, EndpointACL, payload)

	s.mu.Lock()
	s.inflight = false
	if err == nil {
		s.decision = Decision{committed: true, enabled: payload.AccessControl}
	}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("submitting access control: %w", err)
	}
	s.notify()

	if !payload.AccessControl {
		return nil
	}

	logger.Debug("Logging in %s", payload.User)
	if err := s.session.Login(ctx, payload.User, payload.Pass1, true); err != nil {
		return fmt.Errorf("logging in %s: %w", payload.User, err)
	}
	return nil
}
