package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/corewizard/internal/steps"
	tuiwizard "github.com/mark3labs/corewizard/internal/tui/wizard"
	"github.com/mark3labs/corewizard/internal/wizard"
	"gopkg.in/yaml.v3"
)

// Answers are the form values of a headless run.
//
//	acl:
//	  enabled: true
//	  username: admin
//	  password: secret
//	  confirm: secret
//	ssh:
//	  enabled: false
type Answers struct {
	ACL struct {
		Enabled  *bool  `yaml:"enabled"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Confirm  string `yaml:"confirm"`
	} `yaml:"acl"`
	SSH struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"ssh"`
}

// aclEnabled defaults to true, matching the step's own default.
func (a *Answers) aclEnabled() bool {
	return a.ACL.Enabled == nil || *a.ACL.Enabled
}

// ParseAnswers decodes an answers document. Unknown fields are rejected so
// typos do not silently fall back to defaults.
func ParseAnswers(r io.Reader) (*Answers, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var a Answers
	if err := dec.Decode(&a); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	return &a, nil
}

// LoadAnswers reads an answers file.
func LoadAnswers(path string) (*Answers, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening answers: %w", err)
	}
	defer f.Close()
	return ParseAnswers(f)
}

// fill copies the answers into the steps.
func (a *Answers) fill(s tuiwizard.Steps) {
	if s.ACL != nil {
		s.ACL.SetMode(steps.ModeOf(a.aclEnabled()))
		if a.aclEnabled() {
			s.ACL.SetUsername(a.ACL.Username)
			s.ACL.SetPassword(a.ACL.Password)
			s.ACL.SetConfirmedPassword(a.ACL.Confirm)
		}
	}
	if s.SSH != nil {
		s.SSH.SetMode(steps.ModeOf(a.SSH.Enabled))
	}
}

// walk leaves every tab in order, the way a user clicking Next would,
// including leaving the last tab to finish. It stops at the first blocked
// tab and returns its validation error.
func walk(ctrl *wizard.Controller) error {
	keys := ctrl.Registry().Keys()
	for i, from := range keys {
		to := ""
		if i+1 < len(keys) {
			to = keys[i+1]
		}
		if !ctrl.RequestLeave(from, to) {
			return fmt.Errorf("cannot leave %s: %w", from, ctrl.CheckLeave(from))
		}
	}
	return nil
}
