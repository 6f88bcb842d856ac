package tour

import (
	"log/slog"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
)

// Option defines a functional option for configuring a Tour.
type Option func(*Tour)

// WithRenderer sets the collaborator that mounts step views.
func WithRenderer(r ports.Renderer) Option {
	return func(t *Tour) {
		t.renderer = r
	}
}

// WithConfirmer sets the prompt consulted by Cancel when ConfirmCancel is enabled.
func WithConfirmer(c ports.Confirmer) Option {
	return func(t *Tour) {
		t.confirmer = c
	}
}

// WithLogger sets a custom structured logger for the tour.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tour) {
		t.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Tour) {
		t.hooks = hooks
	}
}
