package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tourguide/pkg/domain"
)

// LogHooks logs every tour and step event at info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourEvent: func(ctx context.Context, e *domain.TourRecord) {
			attrs := []any{"tour", e.TourID, "event", e.Type}
			if e.StepID != "" {
				attrs = append(attrs, "step", e.StepID)
			}
			logger.InfoContext(ctx, "tour_event", attrs...)
		},
		OnStepEvent: func(ctx context.Context, e *domain.StepRecord) {
			logger.InfoContext(ctx, "step_event",
				"tour", e.TourID,
				"step", e.StepID,
				"index", e.Index,
				"event", e.Type,
			)
		},
	}
}

// Chain returns hooks calling each of hooks in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourEvent: func(ctx context.Context, e *domain.TourRecord) {
			for _, h := range hooks {
				if h.OnTourEvent != nil {
					h.OnTourEvent(ctx, e)
				}
			}
		},
		OnStepEvent: func(ctx context.Context, e *domain.StepRecord) {
			for _, h := range hooks {
				if h.OnStepEvent != nil {
					h.OnStepEvent(ctx, e)
				}
			}
		},
	}
}
