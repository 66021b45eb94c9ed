// Package scenario - Scenario registry
package scenario

import (
	"fmt"
	"sync"

	"webtoq-cost/internal/errors"
)

// Registry holds scenarios by name, preserving registration order
type Registry struct {
	mu        sync.RWMutex
	scenarios map[string]Scenario
	order     []string
}

// NewRegistry creates a registry seeded with scenarios
func NewRegistry(scenarios ...Scenario) (*Registry, error) {
	r := &Registry{scenarios: make(map[string]Scenario)}
	for _, s := range scenarios {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a scenario; names must be unique
func (r *Registry) Register(s Scenario) error {
	if s.Name == "" {
		return errors.InvalidInput("name", "scenario name is required")
	}
	if err := s.Workload.Validate(); err != nil {
		return errors.Wrapf(errors.TypeInvalidInput, err, "scenario %s", s.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[s.Name]; exists {
		return fmt.Errorf("scenario already registered: %s", s.Name)
	}
	r.scenarios[s.Name] = s
	r.order = append(r.order, s.Name)
	return nil
}

// Get returns a scenario by name
func (r *Registry) Get(name string) (Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenarios[name]
	if !ok {
		return Scenario{}, errors.NotFound("scenario", name)
	}
	return s, nil
}

// List returns every scenario in registration order
func (r *Registry) List() []Scenario {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Scenario, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.scenarios[name])
	}
	return out
}

// Default returns a registry holding the built-in presets
func Default() *Registry {
	r, err := NewRegistry(Presets()...)
	if err != nil {
		panic(err)
	}
	return r
}
