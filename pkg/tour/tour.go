package tour

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/tourguide/internal/logging"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/events"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/aretw0/tourguide/pkg/registry"
	"github.com/google/uuid"
)

// Event is the payload of tour events. Step and Previous are only set for show.
type Event struct {
	Type     domain.TourEvent
	Tour     *Tour
	Step     *Step
	Previous *Step
}

// Tour owns an ordered list of steps and drives navigation between them.
//
// A Tour is not safe for concurrent use: navigation is expected to run on one
// goroutine (a UI loop) or behind session.Manager. Handlers may call navigation
// methods reentrantly.
type Tour struct {
	id    string
	opts  domain.TourOptions
	state domain.TourState

	steps   []*Step
	index   map[string]*Step
	current *Step
	cursor  int

	registry  ports.Registry
	renderer  ports.Renderer
	confirmer ports.Confirmer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	events    *events.Emitter[domain.TourEvent, Event]
}

// New creates a tour bound to reg, the registry arbitrating which tour is active.
// A nil reg gives the tour a private registry. Steps listed in opts.Steps are added in order.
func New(reg ports.Registry, opts domain.TourOptions, options ...Option) (*Tour, error) {
	t := &Tour{
		id:        opts.Name() + "--" + uuid.NewString(),
		opts:      opts,
		state:     domain.StateIdle,
		index:     make(map[string]*Step),
		cursor:    -1,
		registry:  reg,
		renderer:  ports.NopRenderer{},
		confirmer: ports.Accept,
		logger:    logging.NewNop(),
	}
	for _, opt := range options {
		opt(t)
	}
	if t.registry == nil {
		t.registry = registry.NewActive()
	}
	t.logger = t.logger.With("tour", t.id)
	t.events = events.New[domain.TourEvent, Event](t.logger)

	for _, so := range opts.Steps {
		if _, err := t.AddStep(FromOptions(so)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ID implements ports.Activatable.
func (t *Tour) ID() string { return t.id }

// Name returns the human-readable tour name.
func (t *Tour) Name() string { return t.opts.Name() }

// Options returns the tour options.
func (t *Tour) Options() domain.TourOptions { return t.opts }

// State returns the lifecycle state.
func (t *Tour) State() domain.TourState { return t.state }

// Steps returns the steps in traversal order.
func (t *Tour) Steps() []*Step { return slices.Clone(t.steps) }

// Len returns the number of steps.
func (t *Tour) Len() int { return len(t.steps) }

// GetCurrentStep returns the step being shown, or nil.
func (t *Tour) GetCurrentStep() *Step { return t.current }

// GetByID returns the step with the given id, or nil.
func (t *Tour) GetByID(id string) *Step { return t.index[id] }

// IsActive reports whether this tour holds its registry's active slot.
func (t *Tour) IsActive() bool {
	cur, ok := t.registry.Current()
	return ok && cur == ports.Activatable(t)
}

// On subscribes to a tour event.
func (t *Tour) On(event domain.TourEvent, h events.Handler[Event]) events.ID {
	return t.events.On(event, h)
}

// Once subscribes to a single delivery of a tour event.
func (t *Tour) Once(event domain.TourEvent, h events.Handler[Event]) events.ID {
	return t.events.Once(event, h)
}

// OnAny subscribes to every tour event.
func (t *Tour) OnAny(h events.Handler[Event]) events.ID {
	return t.events.OnAny(h)
}

// Off removes subscriptions; without ids, all handlers of event are removed.
func (t *Tour) Off(event domain.TourEvent, ids ...events.ID) {
	t.events.Off(event, ids...)
}

// AddStep appends a step and returns it.
// New steps get the tour's DefaultStepOptions under their own options.
// Ids must be unique within the tour.
func (t *Tour) AddStep(spec StepSpec) (*Step, error) {
	s := spec.resolve(t)
	if s == nil {
		return nil, errors.New("add step: nil step")
	}
	if existing, ok := t.index[s.id]; ok {
		if existing == s {
			return s, nil
		}
		return nil, fmt.Errorf("add step %q to %s: %w", s.id, t.id, domain.ErrDuplicateStepID)
	}

	s.tour = t
	s.events.SetLogger(t.logger)
	t.steps = append(t.steps, s)
	t.index[s.id] = s
	return s, nil
}

// RemoveStep hides (if open), destroys and removes the step with the given id.
// It reports whether a step was removed.
func (t *Tour) RemoveStep(id string) bool {
	s, ok := t.index[id]
	if !ok {
		return false
	}

	s.Destroy()

	// Handlers run by Destroy may have removed it already.
	i := t.indexOf(s)
	if i < 0 {
		return true
	}
	t.steps = slices.Delete(t.steps, i, i+1)
	delete(t.index, id)

	if t.current == s {
		t.current = nil
	}
	if i <= t.cursor {
		t.cursor--
	}
	return true
}

// Start makes the tour active and shows its first eligible step.
//
// If a different tour holds the registry slot, Start returns ErrAnotherTourActive
// and changes nothing. Starting an already active tour keeps the registration,
// fires start and active again and restarts from the first eligible step.
func (t *Tour) Start() error {
	if !t.registry.TryActivate(t) {
		other := "unknown"
		if cur, ok := t.registry.Current(); ok {
			other = cur.ID()
		}
		t.logger.Warn("start rejected", "active", other)
		return fmt.Errorf("start %s (active: %s): %w", t.id, other, domain.ErrAnotherTourActive)
	}

	t.state = domain.StateActive
	t.emit(Event{Type: domain.TourStart})
	t.emit(Event{Type: domain.TourActive})
	if t.state != domain.StateActive {
		return nil
	}

	if t.current != nil {
		t.current.Hide()
	}
	t.current = nil
	t.cursor = -1
	t.Next()
	return nil
}

// Cancel stops the tour, asking the configured confirmer first when
// ConfirmCancel is set. It reports whether the tour was cancelled.
func (t *Tour) Cancel() bool {
	return t.CancelWith(t.confirmer)
}

// CancelWith is Cancel with an explicit confirmer for this call, for drivers
// that collect the answer before cancelling. A nil confirmer accepts.
func (t *Tour) CancelWith(c ports.Confirmer) bool {
	if t.state != domain.StateActive {
		return false
	}
	if t.opts.ConfirmCancel {
		if c == nil {
			c = ports.Accept
		}
		if !c.Confirm(t.opts.CancelMessage()) {
			t.logger.Debug("cancel declined")
			return false
		}
		if t.state != domain.StateActive {
			return false
		}
	}

	t.emit(Event{Type: domain.TourCancel})
	t.done()
	return true
}

// Complete ends the tour successfully. It reports whether the tour was active.
func (t *Tour) Complete() bool {
	if t.state != domain.StateActive {
		return false
	}
	t.emit(Event{Type: domain.TourComplete})
	t.done()
	return true
}

// done is the shared teardown of Cancel and Complete.
func (t *Tour) done() {
	if t.state != domain.StateActive {
		return
	}
	t.state = domain.StateDone

	for _, s := range slices.Clone(t.steps) {
		s.Destroy()
	}
	t.current = nil
	t.cursor = -1

	t.registry.Deactivate(t)
	t.emit(Event{Type: domain.TourInactive})
}

func (t *Tour) emit(ev Event) {
	ev.Tour = t
	t.logger.Debug("tour event", "event", ev.Type)
	t.events.Trigger(ev.Type, ev)

	if t.hooks.OnTourEvent != nil {
		rec := &domain.TourRecord{
			Timestamp: time.Now(),
			Type:      ev.Type,
			TourID:    t.id,
			TourName:  t.Name(),
		}
		if ev.Step != nil {
			rec.StepID = ev.Step.id
		}
		t.hooks.OnTourEvent(context.Background(), rec)
	}
}

func (t *Tour) indexOf(s *Step) int {
	return slices.Index(t.steps, s)
}
