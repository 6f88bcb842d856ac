package dsl

import (
	"fmt"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/schema"
)

// Builder manages the definition construction.
type Builder struct {
	def   schema.Tour
	steps []*StepBuilder
	index map[string]*StepBuilder
}

// New creates a new tour builder.
func New(name string) *Builder {
	return &Builder{
		def:   schema.Tour{Name: name},
		index: make(map[string]*StepBuilder),
	}
}

// Describe sets a free-form description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// ConfirmCancel asks for confirmation before cancelling. An empty message keeps the default.
func (b *Builder) ConfirmCancel(message string) *Builder {
	b.def.ConfirmCancel = true
	b.def.ConfirmCancelMessage = message
	return b
}

// KeyboardNavigation toggles arrow-key navigation in interactive drivers.
func (b *Builder) KeyboardNavigation(on bool) *Builder {
	b.def.KeyboardNavigation = &on
	return b
}

// ExitOnEsc toggles cancelling with the escape key.
func (b *Builder) ExitOnEsc(on bool) *Builder {
	b.def.ExitOnEsc = &on
	return b
}

// Var seeds a show_on variable.
func (b *Builder) Var(key string, value any) *Builder {
	if b.def.Vars == nil {
		b.def.Vars = make(map[string]any)
	}
	b.def.Vars[key] = value
	return b
}

// Defaults returns a builder for the options merged under every step.
func (b *Builder) Defaults() *StepBuilder {
	return &StepBuilder{step: &b.def.DefaultStepOptions, builder: b}
}

// Step adds a step to the tour.
// If the step already exists, it returns the existing builder.
func (b *Builder) Step(id string) *StepBuilder {
	if sb, ok := b.index[id]; ok && id != "" {
		return sb
	}
	sb := &StepBuilder{step: &schema.Step{ID: id}, builder: b}
	b.steps = append(b.steps, sb)
	if id != "" {
		b.index[id] = sb
	}
	return sb
}

// Build assembles and validates the definition.
func (b *Builder) Build() (*schema.Tour, error) {
	def := b.def
	def.Steps = make([]schema.Step, 0, len(b.steps))
	for _, sb := range b.steps {
		def.Steps = append(def.Steps, *sb.step)
	}

	if err := schema.Validate(&def); err != nil {
		return nil, fmt.Errorf("failed to build tour %q: %w", def.Name, err)
	}
	return &def, nil
}

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step    *schema.Step
	builder *Builder
}

// Title sets the heading.
func (s *StepBuilder) Title(title string) *StepBuilder {
	s.step.Title = title
	return s
}

// Text sets the body, rendered as Markdown by terminal drivers.
func (s *StepBuilder) Text(text string) *StepBuilder {
	s.step.Text = text
	return s
}

// Classes sets extra CSS classes.
func (s *StepBuilder) Classes(classes string) *StepBuilder {
	s.step.Classes = classes
	return s
}

// ScrollTo toggles scrolling the anchor into view.
func (s *StepBuilder) ScrollTo(on bool) *StepBuilder {
	s.step.ScrollTo = &on
	return s
}

// AttachTo anchors the step to an element.
func (s *StepBuilder) AttachTo(element string, on domain.Placement) *StepBuilder {
	s.step.AttachTo = &domain.AttachTo{Element: element, On: on}
	return s
}

// Button appends a button bound to a navigation action.
func (s *StepBuilder) Button(text, action string) *StepBuilder {
	s.step.Buttons = append(s.step.Buttons, domain.Button{Text: text, Action: action})
	return s
}

// SecondaryButton appends a de-emphasized button.
func (s *StepBuilder) SecondaryButton(text, action string) *StepBuilder {
	s.step.Buttons = append(s.step.Buttons, domain.Button{Text: text, Action: action, Secondary: true})
	return s
}

// ShowOn sets the eligibility expression.
func (s *StepBuilder) ShowOn(expression string) *StepBuilder {
	s.step.ShowOn = expression
	return s
}

// Extra adds an opaque renderer option.
func (s *StepBuilder) Extra(key string, value any) *StepBuilder {
	if s.step.Extra == nil {
		s.step.Extra = make(map[string]any)
	}
	s.step.Extra[key] = value
	return s
}

// Step continues with another step of the same tour.
func (s *StepBuilder) Step(id string) *StepBuilder {
	return s.builder.Step(id)
}

// Done returns to the tour builder.
func (s *StepBuilder) Done() *Builder {
	return s.builder
}

// Build returns the step as configured so far.
func (s *StepBuilder) Build() schema.Step {
	return *s.step
}
