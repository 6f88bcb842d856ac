package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tourguide"

// Collector records tour and step events as Prometheus metrics.
type Collector struct {
	tourEvents *prometheus.CounterVec
	stepEvents *prometheus.CounterVec
	active     *prometheus.GaugeVec
	dwell      *prometheus.HistogramVec

	mu    sync.Mutex
	shown map[string]time.Time // tourID/stepID -> show time
}

// NewCollector creates the instruments and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tourEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tour_events_total",
				Help:      "Total number of tour events by tour name and event.",
			},
			[]string{"tour", "event"},
		),
		stepEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "step_events_total",
				Help:      "Total number of step events by step id and event.",
			},
			[]string{"step", "event"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "tour_active",
				Help:      "1 while the tour holds the active slot.",
			},
			[]string{"tour"},
		),
		dwell: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "step_dwell_seconds",
				Help:      "Time a step stayed open.",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 300},
			},
			[]string{"step"},
		),
		shown: make(map[string]time.Time),
	}
	if reg != nil {
		reg.MustRegister(c.tourEvents, c.stepEvents, c.active, c.dwell)
	}
	return c
}

// Hooks returns lifecycle hooks feeding the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourEvent: c.observeTour,
		OnStepEvent: c.observeStep,
	}
}

func (c *Collector) observeTour(_ context.Context, e *domain.TourRecord) {
	c.tourEvents.WithLabelValues(e.TourName, string(e.Type)).Inc()
	switch e.Type {
	case domain.TourActive:
		c.active.WithLabelValues(e.TourName).Set(1)
	case domain.TourInactive:
		c.active.WithLabelValues(e.TourName).Set(0)
	}
}

func (c *Collector) observeStep(_ context.Context, e *domain.StepRecord) {
	c.stepEvents.WithLabelValues(e.StepID, string(e.Type)).Inc()

	key := e.TourID + "/" + e.StepID
	c.mu.Lock()
	defer c.mu.Unlock()
	switch e.Type {
	case domain.StepShow:
		c.shown[key] = e.Timestamp
	case domain.StepHide:
		if at, ok := c.shown[key]; ok {
			c.dwell.WithLabelValues(e.StepID).Observe(e.Timestamp.Sub(at).Seconds())
			delete(c.shown, key)
		}
	}
}
