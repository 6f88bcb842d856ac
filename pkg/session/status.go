package session

import (
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/tour"
)

// Status is a serializable snapshot of a tour.
type Status struct {
	Name    string           `json:"name"`
	ID      string           `json:"id"`
	State   domain.TourState `json:"state"`
	Active  bool             `json:"active"`
	Open    bool             `json:"open"`
	Current *domain.StepView `json:"current,omitempty"`
	Steps   []string         `json:"steps"`
}

// Snapshot captures the observable state of t.
func Snapshot(t *tour.Tour) Status {
	st := Status{
		Name:   t.Name(),
		ID:     t.ID(),
		State:  t.State(),
		Active: t.IsActive(),
		Steps:  make([]string, 0, t.Len()),
	}
	for _, s := range t.Steps() {
		st.Steps = append(st.Steps, s.ID())
	}
	if cur := t.GetCurrentStep(); cur != nil {
		view := cur.View()
		st.Current = &view
		st.Open = cur.IsOpen()
	}
	return st
}
