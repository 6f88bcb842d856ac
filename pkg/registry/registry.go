package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Predicate decides whether a step is eligible at traversal time.
type Predicate func() bool

// Conditions manages named ShowOn predicates, so declarative tour definitions can
// refer to Go code by name.
type Conditions struct {
	mu    sync.RWMutex
	preds map[string]Predicate
}

// NewConditions creates a new empty condition registry.
func NewConditions() *Conditions {
	return &Conditions{
		preds: make(map[string]Predicate),
	}
}

// Register adds a predicate to the registry.
// If a predicate with the same name exists, it is overwritten.
func (r *Conditions) Register(name string, fn Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preds[name] = fn
}

// Lookup reports whether name is registered.
func (r *Conditions) Lookup(name string) (Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.preds[name]
	return fn, ok
}

// Names returns the registered names, sorted.
func (r *Conditions) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.preds))
	for name := range r.preds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Predicate returns a closure that resolves name on every call, so predicates
// registered or replaced after a tour is built are still honoured.
// Returns an error if the name is not registered yet.
func (r *Conditions) Predicate(name string) (func() bool, error) {
	if _, ok := r.Lookup(name); !ok {
		return nil, fmt.Errorf("condition not found: %s", name)
	}
	return func() bool {
		fn, ok := r.Lookup(name)
		if !ok {
			return false
		}
		return fn()
	}, nil
}
