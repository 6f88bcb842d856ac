package domain

import "strings"

// Placement names where a step view sits relative to its anchor.
// The core never interprets it; renderers do.
type Placement string

const (
	PlaceAuto   Placement = "auto"
	PlaceTop    Placement = "top"
	PlaceBottom Placement = "bottom"
	PlaceLeft   Placement = "left"
	PlaceRight  Placement = "right"
)

// IsPlacement reports whether p is a known placement, optionally suffixed with
// -start or -end ("bottom-start").
func IsPlacement(p Placement) bool {
	base, _, _ := strings.Cut(string(p), "-")
	switch Placement(base) {
	case PlaceAuto, PlaceTop, PlaceBottom, PlaceLeft, PlaceRight:
		return true
	}
	return false
}

// AttachTo anchors a step to an element.
type AttachTo struct {
	Element string    `json:"element" yaml:"element" mapstructure:"element"`
	On      Placement `json:"on,omitempty" yaml:"on,omitempty" mapstructure:"on"`
}

// Button is a control rendered with a step. Action must be one of the names in Actions.
type Button struct {
	Text      string `json:"text" yaml:"text" mapstructure:"text"`
	Action    string `json:"action" yaml:"action" mapstructure:"action"`
	Classes   string `json:"classes,omitempty" yaml:"classes,omitempty" mapstructure:"classes"`
	Secondary bool   `json:"secondary,omitempty" yaml:"secondary,omitempty" mapstructure:"secondary"`
}

// StepOptions configures a single step.
//
// Zero values mean "unset" when merging with a tour's DefaultStepOptions:
// the step's own non-zero fields always win.
type StepOptions struct {
	ID       string
	Title    string
	Text     string
	Classes  string
	ScrollTo *bool
	AttachTo *AttachTo
	Buttons  []Button

	// ShowOn decides whether the step is eligible when a traversal reaches it.
	// It is called on every traversal, never cached. Nil means always eligible.
	ShowOn func() bool

	// When holds hooks run on the step's own show/hide, after subscribers.
	// Unlike subscribers they survive Destroy.
	When map[StepEvent]func()

	// Extra carries renderer-specific settings the core passes through untouched.
	Extra map[string]any
}

// MergeStepOptions layers step over defaults. Fields set on step win; Extra and When
// are merged key by key.
func MergeStepOptions(defaults, step StepOptions) StepOptions {
	out := defaults
	if step.ID != "" {
		out.ID = step.ID
	}
	if step.Title != "" {
		out.Title = step.Title
	}
	if step.Text != "" {
		out.Text = step.Text
	}
	if step.Classes != "" {
		out.Classes = step.Classes
	}
	if step.ScrollTo != nil {
		out.ScrollTo = step.ScrollTo
	}
	if step.AttachTo != nil {
		out.AttachTo = step.AttachTo
	}
	if step.Buttons != nil {
		out.Buttons = step.Buttons
	}
	if step.ShowOn != nil {
		out.ShowOn = step.ShowOn
	}
	out.When = mergeMap(defaults.When, step.When)
	out.Extra = mergeMap(defaults.Extra, step.Extra)
	return out
}

func mergeMap[K comparable, V any](base, over map[K]V) map[K]V {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[K]V, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// StepView is the read-only snapshot handed to a renderer when a step mounts.
type StepView struct {
	TourID   string         `json:"tour_id"`
	TourName string         `json:"tour_name"`
	StepID   string         `json:"step_id"`
	Index    int            `json:"index"`
	Total    int            `json:"total"`
	Title    string         `json:"title,omitempty"`
	Text     string         `json:"text,omitempty"`
	Classes  string         `json:"classes,omitempty"`
	ScrollTo bool           `json:"scroll_to,omitempty"`
	AttachTo *AttachTo      `json:"attach_to,omitempty"`
	Buttons  []Button       `json:"buttons,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}
