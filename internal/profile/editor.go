// Package profile holds printer profile data, a YAML-backed editor for it,
// and a service that fetches and updates the default profile.
package profile

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"sync"

	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/editor"
	"gopkg.in/yaml.v3"
)

// Data is a printer profile as the server returns it. Its field model
// belongs to the server; the wizard only moves it around.
type Data map[string]any

// ID returns the profile id, if present.
func (d Data) ID() string {
	s, _ := d["id"].(string)
	return s
}

// Name returns the display name, if present.
func (d Data) Name() string {
	s, _ := d["name"].(string)
	return s
}

// Clone returns a shallow copy.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// ErrNotMapping is returned when edited YAML is not a mapping at the top level.
var ErrNotMapping = errors.New("profile must be a YAML mapping")

// Editor edits a profile as YAML text. It keeps the loaded text so the
// edits can be shown as a diff before they are submitted.
type Editor struct {
	mu       sync.Mutex
	original string
	text     string
	data     Data
}

// NewEditor returns an empty editor.
func NewEditor() *Editor {
	return &Editor{data: Data{}}
}

// FromProfileData replaces the editor content with d.
func (e *Editor) FromProfileData(d Data) {
	text, err := marshal(d)
	if err != nil {
		// map[string]any from JSON always marshals; keep the data anyway.
		text = ""
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.data = d.Clone()
	if e.data == nil {
		e.data = Data{}
	}
	e.original = text
	e.text = text
}

// ToProfileData returns the current profile.
func (e *Editor) ToProfileData() Data {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.Clone()
}

// SetText replaces the profile with the parsed text. Invalid YAML leaves
// the editor unchanged.
func (e *Editor) SetText(text string) error {
	var parsed any
	if err := yaml.Unmarshal([]byte(text), &parsed); err != nil {
		return fmt.Errorf("parsing profile: %w", err)
	}

	var d Data
	switch v := parsed.(type) {
	case map[string]any:
		d = Data(v)
	case nil:
		d = Data{}
	default:
		return ErrNotMapping
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.data = d
	e.text = text
	return nil
}

// Text returns the current YAML text.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// Dirty reports whether the text differs from what was loaded.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text != e.original
}

// Diff returns a unified diff of the loaded profile against the edited one,
// or "" when nothing changed.
func (e *Editor) Diff() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.text == e.original {
		return ""
	}
	return udiff.Unified("default", "edited", e.original, e.text)
}

// EditCommand writes the profile to a temp file and returns the command
// that opens it in the user's $EDITOR. Pass the path to ApplyFile once the
// command exits.
func (e *Editor) EditCommand() (*exec.Cmd, string, error) {
	f, err := os.CreateTemp("", "corewizard_profile_*.yaml")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := f.WriteString(e.Text()); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, "", fmt.Errorf("writing temp file: %w", err)
	}
	_ = f.Close()

	cmd, err := editor.Command("corewizard", f.Name())
	if err != nil {
		_ = os.Remove(f.Name())
		return nil, "", fmt.Errorf("building editor command: %w", err)
	}
	return cmd, f.Name(), nil
}

// ApplyFile loads the edited file into the editor and removes it.
func (e *Editor) ApplyFile(path string) error {
	defer func() { _ = os.Remove(path) }()

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading edited profile: %w", err)
	}
	return e.SetText(string(content))
}

func marshal(d Data) (string, error) {
	if len(d) == 0 {
		return "", nil
	}
	out, err := yaml.Marshal(map[string]any(d))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
