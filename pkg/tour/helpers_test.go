package tour_test

import (
	"testing"

	"github.com/aretw0/tourguide/pkg/adapters/memory"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/registry"
	"github.com/aretw0/tourguide/pkg/tour"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	reg      *registry.Active
	renderer *memory.Renderer
	marker   *memory.Marker
	confirm  *memory.Confirmer
}

func newFixture() *fixture {
	marker := memory.NewMarker()
	return &fixture{
		reg:      registry.NewActive(registry.WithMarker(marker)),
		renderer: memory.NewRenderer(),
		marker:   marker,
		confirm:  memory.NewConfirmer(true),
	}
}

func (f *fixture) newTour(t *testing.T, opts domain.TourOptions) *tour.Tour {
	t.Helper()
	tr, err := tour.New(f.reg, opts,
		tour.WithRenderer(f.renderer),
		tour.WithConfirmer(f.confirm),
	)
	require.NoError(t, err)
	return tr
}

func addSteps(t *testing.T, tr *tour.Tour, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := tr.AddStep(tour.Named(id, domain.StepOptions{Title: id}))
		require.NoError(t, err)
	}
}

// record captures tour events as "type" or "type:step".
func record(tr *tour.Tour) *[]string {
	var log []string
	tr.OnAny(func(ev tour.Event) {
		entry := string(ev.Type)
		if ev.Step != nil {
			entry += ":" + ev.Step.ID()
		}
		log = append(log, entry)
	})
	return &log
}

func currentID(tr *tour.Tour) string {
	if s := tr.GetCurrentStep(); s != nil {
		return s.ID()
	}
	return ""
}
