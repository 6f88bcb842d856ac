package tests

import (
	"testing"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RendererContractTest is a reusable test suite that verifies if an adapter complies with ports.Renderer.
func RendererContractTest(t *testing.T, renderer ports.Renderer) {
	t.Helper()

	view := domain.StepView{
		TourID:   "contract--1",
		TourName: "contract",
		StepID:   "intro",
		Index:    0,
		Total:    2,
		Title:    "Welcome",
		Text:     "Hello from the contract suite.",
		Buttons:  []domain.Button{{Text: "Next", Action: domain.ActionNext}},
	}

	// 1. Mount returns a handle
	t.Run("Mount_Success", func(t *testing.T) {
		h, err := renderer.Mount(view)
		if err != nil {
			t.Fatalf("unexpected error mounting %s: %v", view.StepID, err)
		}
		if h == "" {
			t.Error("expected a non-empty handle")
		}
		if err := renderer.Unmount(h); err != nil {
			t.Errorf("unexpected error unmounting %s: %v", h, err)
		}
	})

	// 2. Distinct mounts yield distinct handles
	t.Run("Mount_DistinctHandles", func(t *testing.T) {
		h1, err := renderer.Mount(view)
		if err != nil {
			t.Fatal(err)
		}
		other := view
		other.StepID = "second"
		other.Index = 1
		h2, err := renderer.Mount(other)
		if err != nil {
			t.Fatal(err)
		}
		if h1 == h2 {
			t.Errorf("expected distinct handles, both were %q", h1)
		}
		_ = renderer.Unmount(h1)
		_ = renderer.Unmount(h2)
	})

	// 3. Unknown handles are tolerated
	t.Run("Unmount_Unknown", func(t *testing.T) {
		if err := renderer.Unmount("non-existent-handle"); err != nil {
			t.Errorf("expected unknown handle to be ignored, got %v", err)
		}
	})
}

type contractTour struct{ id string }

func (c *contractTour) ID() string { return c.id }

// RegistryContractTest runs a suite of tests to verify that a Registry implementation
// adheres to the defined interface contract. newRegistry must return an empty registry
// on every call.
func RegistryContractTest(t *testing.T, newRegistry func() ports.Registry) {
	t.Run("Empty", func(t *testing.T) {
		reg := newRegistry()
		_, ok := reg.Current()
		assert.False(t, ok, "a fresh registry must be empty")
	})

	t.Run("Activate Empty Slot", func(t *testing.T) {
		reg := newRegistry()
		a := &contractTour{id: "a"}

		require.True(t, reg.TryActivate(a))
		cur, ok := reg.Current()
		require.True(t, ok)
		assert.Same(t, a, cur)
	})

	t.Run("Reactivate Same Tour", func(t *testing.T) {
		reg := newRegistry()
		a := &contractTour{id: "a"}

		require.True(t, reg.TryActivate(a))
		assert.True(t, reg.TryActivate(a), "re-activation by the holder is idempotent")
		cur, _ := reg.Current()
		assert.Same(t, a, cur)
	})

	t.Run("Occupied Slot Is Not Reassigned", func(t *testing.T) {
		reg := newRegistry()
		a := &contractTour{id: "a"}
		b := &contractTour{id: "b"}

		require.True(t, reg.TryActivate(a))
		assert.False(t, reg.TryActivate(b))
		cur, _ := reg.Current()
		assert.Same(t, a, cur)
	})

	t.Run("Deactivate Only Holder", func(t *testing.T) {
		reg := newRegistry()
		a := &contractTour{id: "a"}
		b := &contractTour{id: "b"}

		require.True(t, reg.TryActivate(a))
		assert.False(t, reg.Deactivate(b), "a non-holder cannot clear the slot")
		_, ok := reg.Current()
		assert.True(t, ok)

		assert.True(t, reg.Deactivate(a))
		_, ok = reg.Current()
		assert.False(t, ok)
		assert.False(t, reg.Deactivate(a), "deactivation is idempotent")

		assert.True(t, reg.TryActivate(b), "slot is free again")
	})
}
