package filter

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Manager holds named preset filters and compiles ad-hoc expressions
type Manager struct {
	compiler Compiler
	presets  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(64)),
		presets:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Compile compiles an ad-hoc expression
func (m *Manager) Compile(expression string) (CompiledFilter, error) {
	return m.compiler.Compile(expression)
}

// RegisterPresets compiles and registers named presets. Nothing is registered
// unless every expression compiles.
func (m *Manager) RegisterPresets(presets map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(presets))

	for name, expression := range presets {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.presets, compiled)
	m.mu.Unlock()

	return nil
}

// Preset returns a registered preset by name
func (m *Manager) Preset(name string) (CompiledFilter, error) {
	m.mu.RLock()
	filter, ok := m.presets[name]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPreset, name)
	}
	return filter, nil
}

// Presets returns the registered preset names in sorted order
func (m *Manager) Presets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.presets))
}

// Resolve picks the filter for a command: an explicit expression wins over a
// preset name. Both empty means no filter (nil, nil).
func (m *Manager) Resolve(expression, preset string) (CompiledFilter, error) {
	switch {
	case expression != "":
		return m.Compile(expression)
	case preset != "":
		return m.Preset(preset)
	default:
		return nil, nil
	}
}

// Apply returns the subjects matching f in their original order. A subject
// whose evaluation fails is skipped and its error is reported in the joined
// error. A nil filter matches everything.
func Apply(f Filter, subjects []Subject) ([]Subject, error) {
	if f == nil {
		return subjects, nil
	}

	matches := make([]Subject, 0, len(subjects))
	var errs []error
	for _, s := range subjects {
		ok, err := f.Evaluate(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			matches = append(matches, s)
		}
	}

	return matches, errors.Join(errs...)
}
