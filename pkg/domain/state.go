package domain

// TourState defines the lifecycle position of a tour.
type TourState string

const (
	StateIdle   TourState = "idle"   // Never started, or Start was rejected
	StateActive TourState = "active" // Registered and presenting steps
	StateDone   TourState = "done"   // Torn down; Start may reactivate it
)
