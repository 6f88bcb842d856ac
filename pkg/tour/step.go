package tour

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/tourguide/internal/logging"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/events"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/google/uuid"
)

// StepInfo is the payload of step events.
type StepInfo struct {
	Type domain.StepEvent
	Step *Step
}

// Step is one point of a tour. It owns its open/closed state and the handle of
// whatever the renderer mounted for it.
type Step struct {
	id      string
	tour    *Tour
	opts    domain.StepOptions
	open    bool
	mounted bool
	handle  ports.Handle
	events  *events.Emitter[domain.StepEvent, StepInfo]
}

// NewStep creates a step bound to t without adding it to t's steps.
// t may be nil; AddStep(Existing(step)) attaches it later.
func NewStep(t *Tour, opts domain.StepOptions) *Step {
	id := opts.ID
	if id == "" {
		id = domain.StepIDPrefix + "-" + uuid.NewString()
	}
	opts.ID = id

	var logger *slog.Logger
	if t != nil {
		logger = t.logger
	}
	return &Step{
		id:     id,
		tour:   t,
		opts:   opts,
		events: events.New[domain.StepEvent, StepInfo](logger),
	}
}

// ID returns the step id.
func (s *Step) ID() string { return s.id }

// Tour returns the owning tour, or nil for a detached step.
func (s *Step) Tour() *Tour { return s.tour }

// Options returns the effective (merged) options of the step.
func (s *Step) Options() domain.StepOptions { return s.opts }

// IsOpen reports whether the step is currently shown.
func (s *Step) IsOpen() bool { return s.open }

// Index returns the position of the step in its tour, or -1.
func (s *Step) Index() int {
	if s.tour == nil {
		return -1
	}
	return s.tour.indexOf(s)
}

// Eligible evaluates ShowOn. It is called afresh on every traversal.
func (s *Step) Eligible() bool {
	return s.opts.ShowOn == nil || s.opts.ShowOn()
}

// On subscribes to a step event.
func (s *Step) On(event domain.StepEvent, h events.Handler[StepInfo]) events.ID {
	return s.events.On(event, h)
}

// Once subscribes to a single delivery of a step event.
func (s *Step) Once(event domain.StepEvent, h events.Handler[StepInfo]) events.ID {
	return s.events.Once(event, h)
}

// Off removes subscriptions; without ids, all handlers of event are removed.
func (s *Step) Off(event domain.StepEvent, ids ...events.ID) {
	s.events.Off(event, ids...)
}

// View builds the snapshot handed to renderers.
func (s *Step) View() domain.StepView {
	v := domain.StepView{
		StepID:   s.id,
		Index:    s.Index(),
		Title:    s.opts.Title,
		Text:     s.opts.Text,
		Classes:  s.opts.Classes,
		AttachTo: s.opts.AttachTo,
		Buttons:  s.opts.Buttons,
		Extra:    s.opts.Extra,
	}
	if s.opts.ScrollTo != nil {
		v.ScrollTo = *s.opts.ScrollTo
	}
	if s.tour != nil {
		v.TourID = s.tour.id
		v.TourName = s.tour.Name()
		v.Total = len(s.tour.steps)
	}
	return v
}

// Show opens the step and mounts it. Showing an open step does nothing.
func (s *Step) Show() {
	if s.open {
		return
	}
	s.open = true
	s.mount()
	s.trigger(domain.StepShow)
	if fn := s.opts.When[domain.StepShow]; fn != nil {
		fn()
	}
}

// Hide closes the step and unmounts it. Hiding a closed step does nothing.
func (s *Step) Hide() {
	if !s.open {
		return
	}
	s.open = false
	s.trigger(domain.StepHide)
	if fn := s.opts.When[domain.StepHide]; fn != nil {
		fn()
	}
	s.unmount()
}

// Destroy hides the step if needed, releases every rendering artifact and drops
// all subscribers. The step can be shown again afterwards.
func (s *Step) Destroy() {
	s.Hide()
	s.unmount()
	s.events.Clear()
}

func (s *Step) mount() {
	h, err := s.renderer().Mount(s.View())
	if err != nil {
		s.log().Warn("step mount failed", "step", s.id, "err", err)
		return
	}
	s.handle = h
	s.mounted = true
}

func (s *Step) unmount() {
	if !s.mounted {
		return
	}
	if err := s.renderer().Unmount(s.handle); err != nil {
		s.log().Warn("step unmount failed", "step", s.id, "handle", s.handle, "err", err)
	}
	s.mounted = false
	s.handle = ""
}

func (s *Step) trigger(event domain.StepEvent) {
	s.log().Debug("step event", "event", event, "step", s.id)
	s.events.Trigger(event, StepInfo{Type: event, Step: s})

	if s.tour != nil && s.tour.hooks.OnStepEvent != nil {
		s.tour.hooks.OnStepEvent(context.Background(), &domain.StepRecord{
			Timestamp: time.Now(),
			Type:      event,
			TourID:    s.tour.id,
			StepID:    s.id,
			Index:     s.Index(),
		})
	}
}

func (s *Step) renderer() ports.Renderer {
	if s.tour == nil || s.tour.renderer == nil {
		return ports.NopRenderer{}
	}
	return s.tour.renderer
}

func (s *Step) log() *slog.Logger {
	if s.tour == nil {
		return logging.NewNop()
	}
	return s.tour.logger
}
