package loam

import "github.com/aretw0/tourguide/pkg/schema"

// StepMetadata is the frontmatter of a step document.
// It uses "mapstructure" tags to match the keys of a YAML definition.
type StepMetadata struct {
	schema.Step `mapstructure:",squash"`

	// Tour marks the header document; its value holds tour-level fields.
	Tour map[string]any `json:"tour,omitempty" mapstructure:"tour"`
}
