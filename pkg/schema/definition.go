package schema

import "github.com/aretw0/tourguide/pkg/domain"

// Tour is the declarative form of a tour.
type Tour struct {
	Name                 string `yaml:"name" json:"name" mapstructure:"name"`
	Description          string `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	ConfirmCancel        bool   `yaml:"confirm_cancel,omitempty" json:"confirm_cancel,omitempty" mapstructure:"confirm_cancel"`
	ConfirmCancelMessage string `yaml:"confirm_cancel_message,omitempty" json:"confirm_cancel_message,omitempty" mapstructure:"confirm_cancel_message"`

	// Nil means enabled.
	KeyboardNavigation *bool `yaml:"keyboard_navigation,omitempty" json:"keyboard_navigation,omitempty" mapstructure:"keyboard_navigation"`
	ExitOnEsc          *bool `yaml:"exit_on_esc,omitempty" json:"exit_on_esc,omitempty" mapstructure:"exit_on_esc"`

	DefaultStepOptions Step `yaml:"default_step_options,omitempty" json:"default_step_options,omitempty" mapstructure:"default_step_options"`

	// Vars seeds the environment show_on expressions are evaluated against.
	Vars map[string]any `yaml:"vars,omitempty" json:"vars,omitempty" mapstructure:"vars"`

	Steps []Step `yaml:"steps" json:"steps" mapstructure:"steps"`
}

// Step is the declarative form of a step.
type Step struct {
	ID       string           `yaml:"id,omitempty" json:"id,omitempty" mapstructure:"id"`
	Title    string           `yaml:"title,omitempty" json:"title,omitempty" mapstructure:"title"`
	Text     string           `yaml:"text,omitempty" json:"text,omitempty" mapstructure:"text"`
	Classes  string           `yaml:"classes,omitempty" json:"classes,omitempty" mapstructure:"classes"`
	ScrollTo *bool            `yaml:"scroll_to,omitempty" json:"scroll_to,omitempty" mapstructure:"scroll_to"`
	AttachTo *domain.AttachTo `yaml:"attach_to,omitempty" json:"attach_to,omitempty" mapstructure:"attach_to"`
	Buttons  []domain.Button  `yaml:"buttons,omitempty" json:"buttons,omitempty" mapstructure:"buttons"`

	// ShowOn is an expression; empty means always eligible.
	ShowOn string `yaml:"show_on,omitempty" json:"show_on,omitempty" mapstructure:"show_on"`

	// Order sorts steps loaded from unordered sources such as a directory.
	Order int `yaml:"order,omitempty" json:"order,omitempty" mapstructure:"order"`

	Extra map[string]any `yaml:"extra,omitempty" json:"extra,omitempty" mapstructure:"extra"`
}

// Options converts the step to domain options. ShowOn is left unset.
func (s Step) Options() domain.StepOptions {
	return domain.StepOptions{
		ID:       s.ID,
		Title:    s.Title,
		Text:     s.Text,
		Classes:  s.Classes,
		ScrollTo: s.ScrollTo,
		AttachTo: s.AttachTo,
		Buttons:  s.Buttons,
		Extra:    s.Extra,
	}
}

// Options converts the tour header to domain options. Steps are not included;
// they need their show_on expressions compiled first.
func (t *Tour) Options() domain.TourOptions {
	return domain.TourOptions{
		TourName:             t.Name,
		DefaultStepOptions:   t.DefaultStepOptions.Options(),
		ConfirmCancel:        t.ConfirmCancel,
		ConfirmCancelMessage: t.ConfirmCancelMessage,
		KeyboardNavigation:   enabled(t.KeyboardNavigation),
		ExitOnEsc:            enabled(t.ExitOnEsc),
	}
}

// StepIDs returns the declared step ids in order; undeclared ids are empty.
func (t *Tour) StepIDs() []string {
	ids := make([]string, len(t.Steps))
	for i, s := range t.Steps {
		ids[i] = s.ID
	}
	return ids
}

func enabled(b *bool) bool {
	return b == nil || *b
}
