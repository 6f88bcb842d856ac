package condition

import (
	"maps"
	"strings"
	"sync"

	"github.com/aretw0/tourguide/pkg/registry"
)

// Env is the variable table expressions are evaluated against. Safe for concurrent use.
type Env struct {
	mu         sync.RWMutex
	vars       map[string]any
	conditions *registry.Conditions
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithConditions exposes every named predicate of c as a zero-argument function,
// so expressions can write `isPro() && step > 2`.
func WithConditions(c *registry.Conditions) EnvOption {
	return func(e *Env) {
		e.conditions = c
	}
}

// NewEnv creates an Env seeded with a copy of vars.
func NewEnv(vars map[string]any, opts ...EnvOption) *Env {
	e := &Env{vars: make(map[string]any, len(vars))}
	maps.Copy(e.vars, vars)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Set assigns a top-level variable.
func (e *Env) Set(key string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[key] = value
}

// SetPath assigns a nested variable addressed by a dotted path, creating
// intermediate maps as needed. A non-map value on the path is replaced.
func (e *Env) SetPath(path string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	parts := strings.Split(path, ".")
	m := e.vars
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

// Get returns a top-level variable.
func (e *Env) Get(key string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.vars[key]
	return v, ok
}

// Delete removes a top-level variable.
func (e *Env) Delete(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.vars, key)
}

// Snapshot returns the environment handed to a single evaluation: a deep copy of
// the variables plus the named conditions as functions. Variables win over
// conditions of the same name.
func (e *Env) Snapshot() map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string]any, len(e.vars))
	if e.conditions != nil {
		for _, name := range e.conditions.Names() {
			if fn, ok := e.conditions.Lookup(name); ok {
				out[name] = func() bool { return fn() }
			}
		}
	}
	for k, v := range e.vars {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, inner := range m {
		out[k] = deepCopy(inner)
	}
	return out
}
