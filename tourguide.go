package tourguide

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/tourguide/internal/logging"
	loamAdapter "github.com/aretw0/tourguide/pkg/adapters/loam"
	"github.com/aretw0/tourguide/pkg/condition"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/aretw0/tourguide/pkg/registry"
	"github.com/aretw0/tourguide/pkg/schema"
	"github.com/aretw0/tourguide/pkg/tour"
)

// Guide is the high-level entry point for the library. Every tour it creates
// shares one active-tour registry, one set of collaborators and one
// condition environment.
type Guide struct {
	registry   ports.Registry
	marker     ports.Marker
	renderer   ports.Renderer
	confirmer  ports.Confirmer
	conditions *registry.Conditions
	env        *condition.Env
	vars       map[string]any
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Guide.
type Option func(*Guide)

// WithRegistry replaces the in-process registry, e.g. with the Redis one.
func WithRegistry(r ports.Registry) Option {
	return func(g *Guide) {
		g.registry = r
	}
}

// WithMarker sets the marker of the default registry. Ignored with WithRegistry.
func WithMarker(m ports.Marker) Option {
	return func(g *Guide) {
		g.marker = m
	}
}

// WithRenderer sets the renderer every tour mounts its steps with.
func WithRenderer(r ports.Renderer) Option {
	return func(g *Guide) {
		g.renderer = r
	}
}

// WithConfirmer sets the cancel confirmation prompt.
func WithConfirmer(c ports.Confirmer) Option {
	return func(g *Guide) {
		g.confirmer = c
	}
}

// WithConditions shares a named predicate table with the guide. show_on
// expressions can call its entries as functions.
func WithConditions(c *registry.Conditions) Option {
	return func(g *Guide) {
		g.conditions = c
	}
}

// WithVars seeds the condition environment.
func WithVars(vars map[string]any) Option {
	return func(g *Guide) {
		g.vars = vars
	}
}

// WithLifecycleHooks registers observability hooks on every tour.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Guide) {
		g.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guide) {
		g.logger = logger
	}
}

// New creates a Guide.
func New(opts ...Option) *Guide {
	g := &Guide{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.conditions == nil {
		g.conditions = registry.NewConditions()
	}
	if g.registry == nil {
		regOpts := []registry.Option{registry.WithLogger(g.logger)}
		if g.marker != nil {
			regOpts = append(regOpts, registry.WithMarker(g.marker))
		}
		g.registry = registry.NewActive(regOpts...)
	}
	g.env = condition.NewEnv(g.vars, condition.WithConditions(g.conditions))
	return g
}

var (
	defaultGuide     *Guide
	defaultGuideOnce sync.Once
)

// Default returns the process-wide Guide, so independent packages that
// create tours still see one active tour at a time.
func Default() *Guide {
	defaultGuideOnce.Do(func() {
		defaultGuide = New()
	})
	return defaultGuide
}

// Registry returns the active-tour registry.
func (g *Guide) Registry() ports.Registry { return g.registry }

// Env returns the environment show_on expressions read.
func (g *Guide) Env() *condition.Env { return g.env }

// Conditions returns the named predicate table.
func (g *Guide) Conditions() *registry.Conditions { return g.conditions }

// Active returns the tour currently holding the registry slot.
func (g *Guide) Active() (*tour.Tour, bool) {
	cur, ok := g.registry.Current()
	if !ok {
		return nil, false
	}
	t, ok := cur.(*tour.Tour)
	return t, ok
}

func (g *Guide) tourOptions(extra []tour.Option) []tour.Option {
	opts := []tour.Option{
		tour.WithLogger(g.logger),
		tour.WithLifecycleHooks(g.hooks),
	}
	if g.renderer != nil {
		opts = append(opts, tour.WithRenderer(g.renderer))
	}
	if g.confirmer != nil {
		opts = append(opts, tour.WithConfirmer(g.confirmer))
	}
	return append(opts, extra...)
}

// NewTour creates a tour bound to the guide's registry. Options given here
// override the guide's collaborators.
func (g *Guide) NewTour(opts domain.TourOptions, options ...tour.Option) (*tour.Tour, error) {
	return tour.New(g.registry, opts, g.tourOptions(options)...)
}

// Build turns a definition into a tour. show_on expressions are compiled
// once and evaluated against the guide's Env on every traversal. Definition
// vars only fill variables the Env does not hold yet.
func (g *Guide) Build(def *schema.Tour, options ...tour.Option) (*tour.Tour, error) {
	if err := schema.Validate(def); err != nil {
		return nil, fmt.Errorf("invalid tour definition: %w", err)
	}

	opts := def.Options()
	opts.Steps = make([]domain.StepOptions, 0, len(def.Steps))
	for i, s := range def.Steps {
		so := s.Options()
		showOn, err := condition.Predicate(s.ShowOn, g.env, g.logger.With("tour", def.Name, "step", s.ID))
		if err != nil {
			return nil, &schema.AggregateError{Errors: []error{&schema.ValidationError{
				Key:    fmt.Sprintf("steps[%d].show_on", i),
				Reason: "invalid expression",
				Value:  err,
			}}}
		}
		so.ShowOn = showOn
		opts.Steps = append(opts.Steps, so)
	}

	for k, v := range def.Vars {
		if _, ok := g.env.Get(k); !ok {
			g.env.Set(k, v)
		}
	}

	return g.NewTour(opts, options...)
}

// Load reads a definition from a YAML or JSON file, or from a directory of
// step documents.
func (g *Guide) Load(ctx context.Context, path string) (*schema.Tour, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if !info.IsDir() {
		return schema.ParseFile(path)
	}

	loader, err := loamAdapter.Open(path)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx)
}

// LoadTour is Load followed by Build.
func (g *Guide) LoadTour(ctx context.Context, path string, options ...tour.Option) (*tour.Tour, error) {
	def, err := g.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return g.Build(def, options...)
}
