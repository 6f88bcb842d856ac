package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeStepOptions(t *testing.T) {
	scroll := false
	defaults := StepOptions{
		Title:    "Default",
		Classes:  "tour-step",
		ScrollTo: &scroll,
		Buttons:  []Button{{Text: "Next", Action: ActionNext}},
		Extra:    map[string]any{"arrow": true},
	}

	got := MergeStepOptions(defaults, StepOptions{
		ID:    "intro",
		Title: "Intro",
		Extra: map[string]any{"modal": true},
	})

	assert.Equal(t, "intro", got.ID)
	assert.Equal(t, "Intro", got.Title)
	assert.Equal(t, "tour-step", got.Classes)
	assert.Same(t, &scroll, got.ScrollTo)
	assert.Len(t, got.Buttons, 1)
	assert.Equal(t, map[string]any{"arrow": true, "modal": true}, got.Extra)
	assert.Equal(t, map[string]any{"arrow": true}, defaults.Extra, "defaults are not mutated")
}

func TestMergeStepOptions_EmptyButtonsOverride(t *testing.T) {
	defaults := StepOptions{Buttons: []Button{{Text: "Next", Action: ActionNext}}}

	got := MergeStepOptions(defaults, StepOptions{Buttons: []Button{}})
	assert.Empty(t, got.Buttons, "an explicit empty list removes default buttons")

	got = MergeStepOptions(defaults, StepOptions{})
	assert.Len(t, got.Buttons, 1)
}

func TestTourOptions_Defaults(t *testing.T) {
	var opts TourOptions
	assert.Equal(t, DefaultTourName, opts.Name())
	assert.Equal(t, DefaultConfirmCancelMessage, opts.CancelMessage())

	opts = TourOptions{TourName: "intro", ConfirmCancelMessage: "Quit?"}
	assert.Equal(t, "intro", opts.Name())
	assert.Equal(t, "Quit?", opts.CancelMessage())
}

func TestIsAction(t *testing.T) {
	for _, a := range Actions {
		assert.True(t, IsAction(a), a)
	}
	assert.False(t, IsAction("jump"))
}

func TestIsPlacement(t *testing.T) {
	assert.True(t, IsPlacement(PlaceBottom))
	assert.True(t, IsPlacement("left-start"))
	assert.True(t, IsPlacement("auto-end"))
	assert.False(t, IsPlacement("middle"))
	assert.False(t, IsPlacement(""))
}
