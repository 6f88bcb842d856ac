package ports

// Activatable is anything that can occupy the active slot of a Registry.
// Tours implement it; identity (not ID) decides ownership of the slot.
type Activatable interface {
	ID() string
}

// Registry holds at most one active tour.
type Registry interface {
	// TryActivate stores t if the slot is empty and reports whether t now holds it.
	// It returns true without reassigning when t already holds the slot and false
	// when another tour does. The check-then-set is atomic.
	TryActivate(t Activatable) bool

	// Deactivate clears the slot only if t holds it, reporting whether it did.
	Deactivate(t Activatable) bool

	// Current returns the tour holding the slot, if any.
	Current() (Activatable, bool)
}
