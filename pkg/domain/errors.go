package domain

import "errors"

// ErrAnotherTourActive is returned by Start when a different tour already holds the active slot.
var ErrAnotherTourActive = errors.New("another tour is already active")

// ErrDuplicateStepID is returned when a step id is already used within the tour.
var ErrDuplicateStepID = errors.New("duplicate step id")

// ErrUnknownAction is returned when a button action name cannot be dispatched.
var ErrUnknownAction = errors.New("unknown step action")

// ErrTourNotFound is returned when a tour name cannot be found in a session manager.
var ErrTourNotFound = errors.New("tour not found")

// ErrStepNotFound is returned by adapters when a step key cannot be resolved.
// The core itself never returns it: unresolved keys are silent no-ops.
var ErrStepNotFound = errors.New("step not found")

// ErrTourExists is returned when a tour name is registered twice in a session manager.
var ErrTourExists = errors.New("tour already registered")
