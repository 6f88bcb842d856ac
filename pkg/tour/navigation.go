package tour

import (
	"fmt"

	"github.com/aretw0/tourguide/pkg/domain"
)

// Next shows the next eligible step after the current position.
// Steps whose ShowOn returns false are skipped silently. When no eligible step
// remains, the tour completes. Next does nothing unless the tour is active.
func (t *Tour) Next() {
	if t.state != domain.StateActive {
		return
	}
	for i := t.cursor + 1; i < len(t.steps); i++ {
		if s := t.steps[i]; s.Eligible() {
			t.showStep(s)
			return
		}
	}
	t.Complete()
}

// Back shows the previous eligible step. Walking off the first step does nothing.
func (t *Tour) Back() {
	if t.state != domain.StateActive {
		return
	}
	// Without a current step the cursor sits between steps (the current one was
	// removed), so the step under it has not been visited yet.
	start := t.cursor - 1
	if t.current == nil {
		start = t.cursor
	}
	start = min(start, len(t.steps)-1)
	for i := start; i >= 0; i-- {
		if s := t.steps[i]; s.Eligible() {
			t.showStep(s)
			return
		}
	}
}

// Show displays the step with the given id. Unknown ids change nothing and fire
// nothing; the return value reports whether a step was found.
// ShowOn is not consulted: an explicit request wins over the skip policy.
// Inactive tours show nothing.
func (t *Tour) Show(id string) bool {
	if t.state != domain.StateActive {
		return false
	}
	s, ok := t.index[id]
	if !ok {
		return false
	}
	t.showStep(s)
	return true
}

// ShowAt displays the step at a zero-based index. Out of range indexes are no-ops.
func (t *Tour) ShowAt(index int) bool {
	if t.state != domain.StateActive {
		return false
	}
	if index < 0 || index >= len(t.steps) {
		return false
	}
	t.showStep(t.steps[index])
	return true
}

// Hide closes the current step without moving or ending the tour.
// The step stays current, so Show can bring it back.
func (t *Tour) Hide() {
	if t.current != nil {
		t.current.Hide()
	}
}

// Dispatch runs a named button action.
func (t *Tour) Dispatch(action string) error {
	switch action {
	case domain.ActionNext:
		t.Next()
	case domain.ActionBack:
		t.Back()
	case domain.ActionCancel:
		t.Cancel()
	case domain.ActionComplete:
		t.Complete()
	case domain.ActionHide:
		t.Hide()
	default:
		return fmt.Errorf("dispatch %q: %w", action, domain.ErrUnknownAction)
	}
	return nil
}

func (t *Tour) showStep(s *Step) {
	prev := t.current
	if prev != nil {
		prev.Hide()
		// A hide handler may have navigated or ended the tour; that call wins.
		if t.current != prev || t.state != domain.StateActive {
			return
		}
	}

	t.current = s
	t.cursor = t.indexOf(s)
	s.Show()
	if t.current != s || t.state != domain.StateActive {
		return
	}
	t.emit(Event{Type: domain.TourShow, Step: s, Previous: prev})
}
