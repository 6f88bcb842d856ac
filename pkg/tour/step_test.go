package tour_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/tour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_ShowHideIdempotent(t *testing.T) {
	f := newFixture()
	tr := f.newTour(t, domain.TourOptions{})
	s, err := tr.AddStep(tour.Named("a", domain.StepOptions{}))
	require.NoError(t, err)

	shows, hides := 0, 0
	s.On(domain.StepShow, func(tour.StepInfo) { shows++ })
	s.On(domain.StepHide, func(tour.StepInfo) { hides++ })

	s.Show()
	s.Show()
	assert.True(t, s.IsOpen())
	assert.Equal(t, 1, shows)
	assert.Equal(t, []string{"a"}, f.renderer.Mounted())

	s.Hide()
	s.Hide()
	assert.False(t, s.IsOpen())
	assert.Equal(t, 1, hides)
	assert.Equal(t, []string{"mount:a", "unmount:a"}, f.renderer.History())
}

func TestStep_WhenRunsAfterSubscribers(t *testing.T) {
	f := newFixture()
	tr := f.newTour(t, domain.TourOptions{})

	var order []string
	s, err := tr.AddStep(tour.Named("a", domain.StepOptions{
		When: map[domain.StepEvent]func(){
			domain.StepShow: func() { order = append(order, "when:show") },
			domain.StepHide: func() { order = append(order, "when:hide") },
		},
	}))
	require.NoError(t, err)
	s.On(domain.StepShow, func(tour.StepInfo) { order = append(order, "on:show") })
	s.On(domain.StepHide, func(tour.StepInfo) { order = append(order, "on:hide") })

	s.Show()
	s.Hide()
	assert.Equal(t, []string{"on:show", "when:show", "on:hide", "when:hide"}, order)
}

func TestStep_DestroyKeepsWhenHooks(t *testing.T) {
	f := newFixture()
	tr := f.newTour(t, domain.TourOptions{})

	whenShows, subShows := 0, 0
	s, err := tr.AddStep(tour.Named("a", domain.StepOptions{
		When: map[domain.StepEvent]func(){domain.StepShow: func() { whenShows++ }},
	}))
	require.NoError(t, err)
	s.On(domain.StepShow, func(tour.StepInfo) { subShows++ })

	s.Show()
	s.Destroy()
	assert.False(t, s.IsOpen())
	assert.Empty(t, f.renderer.Handles())

	s.Show()
	assert.Equal(t, 2, whenShows)
	assert.Equal(t, 1, subShows)
}

func TestStep_MountFailureKeepsStepOpen(t *testing.T) {
	f := newFixture()
	f.renderer.FailMount = map[string]bool{"broken": true}
	tr := f.newTour(t, domain.TourOptions{})
	addSteps(t, tr, "broken", "ok")

	require.NoError(t, tr.Start())
	assert.Equal(t, "broken", currentID(tr))
	assert.True(t, tr.GetCurrentStep().IsOpen())
	assert.Empty(t, f.renderer.Mounted())

	tr.Next()
	assert.Equal(t, []string{"ok"}, f.renderer.Mounted())
}

func TestStep_View(t *testing.T) {
	f := newFixture()
	scroll := true
	tr := f.newTour(t, domain.TourOptions{TourName: "intro"})
	addSteps(t, tr, "first")
	s, err := tr.AddStep(tour.Named("second", domain.StepOptions{
		Title:    "Second",
		Text:     "Body",
		ScrollTo: &scroll,
		AttachTo: &domain.AttachTo{Element: "#menu", On: domain.PlaceBottom},
		Buttons:  []domain.Button{{Text: "Next", Action: domain.ActionNext}},
	}))
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, tr.ID(), v.TourID)
	assert.Equal(t, "intro", v.TourName)
	assert.Equal(t, "second", v.StepID)
	assert.Equal(t, 1, v.Index)
	assert.Equal(t, 2, v.Total)
	assert.True(t, v.ScrollTo)
	assert.Equal(t, "#menu", v.AttachTo.Element)
	require.Len(t, v.Buttons, 1)
	assert.Equal(t, domain.ActionNext, v.Buttons[0].Action)
}

func TestStep_Detached(t *testing.T) {
	s := tour.NewStep(nil, domain.StepOptions{ID: "alone"})
	assert.Nil(t, s.Tour())
	assert.Equal(t, -1, s.Index())

	s.Show()
	assert.True(t, s.IsOpen())
	s.Destroy()
	assert.False(t, s.IsOpen())
}

func TestStep_AdoptedStepLogsHandlerPanics(t *testing.T) {
	var buf bytes.Buffer
	tr, err := tour.New(nil, domain.TourOptions{TourName: "adopt"},
		tour.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, err)

	s := tour.NewStep(nil, domain.StepOptions{ID: "orphan"})
	s.On(domain.StepShow, func(tour.StepInfo) { panic("boom") })
	_, err = tr.AddStep(tour.Existing(s))
	require.NoError(t, err)

	require.NoError(t, tr.Start())
	assert.True(t, s.IsOpen())
	assert.Contains(t, buf.String(), "event handler panicked")
	assert.Contains(t, buf.String(), "tour=adopt")
}

func TestStep_Eligible(t *testing.T) {
	flag := false
	s := tour.NewStep(nil, domain.StepOptions{ShowOn: func() bool { return flag }})
	assert.False(t, s.Eligible())
	flag = true
	assert.True(t, s.Eligible())

	assert.True(t, tour.NewStep(nil, domain.StepOptions{}).Eligible())
}
