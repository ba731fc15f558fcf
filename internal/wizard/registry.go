package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyKey is returned when a step has no key.
	ErrEmptyKey = errors.New("step key is empty")
	// ErrDuplicateStep is returned when two steps share a key.
	ErrDuplicateStep = errors.New("duplicate step key")
)

// Registry is the ordered, immutable list of steps of one wizard.
// It is assembled once and handed to the controller.
type Registry struct {
	steps []Step
	index map[string]int
}

// NewRegistry creates a registry with the steps in the given order.
func NewRegistry(steps ...Step) (*Registry, error) {
	r := &Registry{
		steps: make([]Step, 0, len(steps)),
		index: make(map[string]int, len(steps)),
	}

	for _, s := range steps {
		key := s.Key()
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("registering step %d: %w", len(r.steps), ErrEmptyKey)
		}
		if _, exists := r.index[key]; exists {
			return nil, fmt.Errorf("registering %s: %w", key, ErrDuplicateStep)
		}
		r.index[key] = len(r.steps)
		r.steps = append(r.steps, s)
	}

	return r, nil
}

// Steps returns the steps in registration order.
func (r *Registry) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Keys returns the step keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.steps))
	for i, s := range r.steps {
		keys[i] = s.Key()
	}
	return keys
}

// Len returns the number of steps.
func (r *Registry) Len() int {
	return len(r.steps)
}

// Get returns the step with exactly this key.
func (r *Registry) Get(key string) (Step, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.steps[i], true
}

// Owner returns the step that owns a host tab id. Hosts may suffix tab ids,
// so "<key>_<anything>" belongs to the step with key <key>.
func (r *Registry) Owner(tabID string) (Step, bool) {
	if tabID == "" {
		return nil, false
	}
	if s, ok := r.Get(tabID); ok {
		return s, true
	}
	for _, s := range r.steps {
		if strings.HasPrefix(tabID, s.Key()+"_") {
			return s, true
		}
	}
	return nil, false
}
