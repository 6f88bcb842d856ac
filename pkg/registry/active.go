package registry

import (
	"log/slog"
	"sync"

	"github.com/aretw0/tourguide/internal/logging"
	"github.com/aretw0/tourguide/pkg/ports"
)

// Active is the in-process active-tour slot. Safe for concurrent use.
type Active struct {
	mu     sync.Mutex
	tour   ports.Activatable
	marker ports.Marker
	logger *slog.Logger
}

// Option configures an Active registry.
type Option func(*Active)

// WithMarker mirrors the active tour id to m.
func WithMarker(m ports.Marker) Option {
	return func(a *Active) {
		a.marker = m
	}
}

// WithLogger configures a logger for activation events.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Active) {
		a.logger = logger
	}
}

// NewActive creates an empty registry.
func NewActive(opts ...Option) *Active {
	a := &Active{
		marker: ports.NopMarker{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var _ ports.Registry = (*Active)(nil)

// TryActivate implements ports.Registry.
func (a *Active) TryActivate(t ports.Activatable) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tour != nil && a.tour != t {
		a.logger.Debug("activation rejected", "tour", t.ID(), "active", a.tour.ID())
		return false
	}
	if a.tour == nil {
		a.tour = t
		a.logger.Debug("tour activated", "tour", t.ID())
	}
	a.marker.SetActive(t.ID())
	return true
}

// Deactivate implements ports.Registry.
func (a *Active) Deactivate(t ports.Activatable) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tour == nil || a.tour != t {
		return false
	}
	a.tour = nil
	a.marker.Clear()
	a.logger.Debug("tour deactivated", "tour", t.ID())
	return true
}

// Current implements ports.Registry.
func (a *Active) Current() (ports.Activatable, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tour, a.tour != nil
}
