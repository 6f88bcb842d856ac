package tour

import "github.com/aretw0/tourguide/pkg/domain"

// StepSpec describes what AddStep should append: a step to build from options,
// or a step that already exists.
type StepSpec interface {
	resolve(t *Tour) *Step
}

type newStep struct {
	id   string
	opts domain.StepOptions
}

type existingStep struct {
	step *Step
}

// FromOptions builds a new step; its id is read from opts.ID or generated.
func FromOptions(opts domain.StepOptions) StepSpec {
	return newStep{opts: opts}
}

// Named builds a new step with an explicit id, overriding opts.ID.
func Named(id string, opts domain.StepOptions) StepSpec {
	return newStep{id: id, opts: opts}
}

// Existing appends an already constructed step as-is. Its tour back-reference
// is moved to the adding tour.
func Existing(s *Step) StepSpec {
	return existingStep{step: s}
}

func (n newStep) resolve(t *Tour) *Step {
	defaults := t.opts.DefaultStepOptions
	defaults.ID = ""
	merged := domain.MergeStepOptions(defaults, n.opts)
	if n.id != "" {
		merged.ID = n.id
	}
	return NewStep(t, merged)
}

func (e existingStep) resolve(*Tour) *Step {
	return e.step
}
