package schema

import (
	"fmt"

	"github.com/aretw0/tourguide/pkg/domain"
)

// Validate checks the structure of a definition.
// Returns an *AggregateError with every failure found, or nil.
func Validate(def *Tour) error {
	if def == nil {
		return &AggregateError{Errors: []error{&ValidationError{Key: "tour", Reason: "definition is nil"}}}
	}

	var errs []error

	if def.Name == "" {
		errs = append(errs, &ValidationError{Key: "name", Reason: "required"})
	}
	if len(def.Steps) == 0 {
		errs = append(errs, &ValidationError{Key: "steps", Reason: "at least one step is required"})
	}
	if def.DefaultStepOptions.ID != "" {
		errs = append(errs, &ValidationError{
			Key:    "default_step_options.id",
			Reason: "ids cannot be defaulted",
			Value:  def.DefaultStepOptions.ID,
		})
	}
	errs = append(errs, validateButtons("default_step_options", def.DefaultStepOptions.Buttons)...)

	seen := make(map[string]int, len(def.Steps))
	for i, s := range def.Steps {
		prefix := fmt.Sprintf("steps[%d]", i)
		if s.ID != "" {
			if first, dup := seen[s.ID]; dup {
				errs = append(errs, &ValidationError{
					Key:    prefix + ".id",
					Reason: fmt.Sprintf("duplicate of steps[%d]", first),
					Value:  s.ID,
				})
			} else {
				seen[s.ID] = i
			}
		}
		if s.Title == "" && s.Text == "" {
			errs = append(errs, &ValidationError{Key: prefix, Reason: "title or text is required"})
		}
		errs = append(errs, validateButtons(prefix, s.Buttons)...)
		if s.AttachTo != nil && s.AttachTo.On != "" && !domain.IsPlacement(s.AttachTo.On) {
			errs = append(errs, &ValidationError{
				Key:    prefix + ".attach_to.on",
				Reason: "unknown placement",
				Value:  s.AttachTo.On,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateButtons(prefix string, buttons []domain.Button) []error {
	var errs []error
	for j, b := range buttons {
		if !domain.IsAction(b.Action) {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("%s.buttons[%d].action", prefix, j),
				Reason: "unknown action",
				Value:  b.Action,
			})
		}
	}
	return errs
}
