// Package steps implements the first-run wizard steps: access control,
// SSH access, camera, server commands and printer profile.
//
// Each step owns its form state and talks to the outside world only through
// the collaborator interfaces declared here.
package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/corewizard/internal/profile"
)

// Step keys. They match the tab ids the host renders.
const (
	KeyACL            = "wizard_plugin_corewizard_acl"
	KeySSH            = "wizard_plugin_corewizard_ssh"
	KeyWebcam         = "wizard_plugin_corewizard_webcam"
	KeyServerCommands = "wizard_plugin_corewizard_servercommands"
	KeyPrinterProfile = "wizard_plugin_corewizard_printerprofile"
)

// Gateway endpoints.
const (
	EndpointACL = "acl"
	EndpointSSH = "ssh"
)

// Gateway persists one step's data on the server.
type Gateway interface {
	Submit(ctx context.Context, endpoint string, payload any) error
}

// SessionService logs a user in.
type SessionService interface {
	Login(ctx context.Context, username, password string, persistent bool) error
}

// ProfileService reads and writes the default printer profile.
type ProfileService interface {
	FetchDefault(ctx context.Context) (profile.Data, error)
	UpdateDefault(ctx context.Context, d profile.Data) error
	RefreshCache(ctx context.Context) error
}

// ProfileEditor holds the profile being edited.
type ProfileEditor interface {
	FromProfileData(d profile.Data)
	ToProfileData() profile.Data
}

// CameraSettings exposes the camera configuration held outside the wizard.
type CameraSettings interface {
	StreamURL() string
	SnapshotURL() string
	FFmpegPath() string
}

// Mode is the state of an enable/disable choice.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeEnabled
)

func (m Mode) String() string {
	if m == ModeEnabled {
		return "enabled"
	}
	return "disabled"
}

// ParseMode parses "enabled"/"disabled" (also on/off, true/false).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enabled", "enable", "on", "true", "yes":
		return ModeEnabled, nil
	case "disabled", "disable", "off", "false", "no":
		return ModeDisabled, nil
	default:
		return ModeDisabled, fmt.Errorf("invalid mode %q", s)
	}
}

// ModeOf returns ModeEnabled for true.
func ModeOf(enabled bool) Mode {
	if enabled {
		return ModeEnabled
	}
	return ModeDisabled
}

// Option configures a step.
type Option func(*options)

type options struct {
	notify func()
}

// WithNotify registers a callback invoked after every change of the step's
// state, from whichever goroutine made the change.
func WithNotify(fn func()) Option {
	return func(o *options) {
		o.notify = fn
	}
}

func buildOptions(opts []Option) options {
	o := options{notify: func() {}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notify == nil {
		o.notify = func() {}
	}
	return o
}
