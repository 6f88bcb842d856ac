package registry_test

import (
	"sync"
	"testing"

	"github.com/aretw0/tourguide/pkg/adapters/memory"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/aretw0/tourguide/pkg/ports/tests"
	"github.com/aretw0/tourguide/pkg/registry"
	"github.com/stretchr/testify/assert"
)

type fakeTour struct{ id string }

func (f *fakeTour) ID() string { return f.id }

func TestActive_Contract(t *testing.T) {
	tests.RegistryContractTest(t, func() ports.Registry {
		return registry.NewActive()
	})
}

func TestActive_Marker(t *testing.T) {
	marker := memory.NewMarker()
	reg := registry.NewActive(registry.WithMarker(marker))
	a := &fakeTour{id: "a--1"}

	reg.TryActivate(a)
	assert.Equal(t, "a--1", marker.Value())

	reg.TryActivate(&fakeTour{id: "b--2"})
	assert.Equal(t, "a--1", marker.Value(), "rejected activation leaves the marker alone")

	reg.Deactivate(a)
	assert.Equal(t, "", marker.Value())
}

func TestActive_ConcurrentActivation(t *testing.T) {
	reg := registry.NewActive()
	tours := make([]*fakeTour, 32)
	for i := range tours {
		tours[i] = &fakeTour{id: "t"}
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for _, tr := range tours {
		wg.Add(1)
		go func(tr *fakeTour) {
			defer wg.Done()
			if reg.TryActivate(tr) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(tr)
	}
	wg.Wait()

	assert.Equal(t, 1, winners, "exactly one tour may win the empty slot")
}
