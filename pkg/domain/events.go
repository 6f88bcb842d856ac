package domain

import (
	"context"
	"time"
)

// TourEvent identifies an event emitted by a Tour.
type TourEvent string

const (
	TourStart    TourEvent = "start"
	TourShow     TourEvent = "show"
	TourActive   TourEvent = "active"
	TourInactive TourEvent = "inactive"
	TourCancel   TourEvent = "cancel"
	TourComplete TourEvent = "complete"
)

// TourEvents lists the public tour event vocabulary in emission-independent order.
var TourEvents = []TourEvent{TourStart, TourShow, TourActive, TourInactive, TourCancel, TourComplete}

// StepEvent identifies an event emitted by a Step.
type StepEvent string

const (
	StepShow StepEvent = "show"
	StepHide StepEvent = "hide"
)

// StepEvents lists the public step event vocabulary.
var StepEvents = []StepEvent{StepShow, StepHide}

// TourRecord is a serializable trace of a tour event, used by lifecycle hooks.
type TourRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Type      TourEvent `json:"type"`
	TourID    string    `json:"tour_id"`
	TourName  string    `json:"tour_name"`
	StepID    string    `json:"step_id,omitempty"`
}

// StepRecord is a serializable trace of a step event.
type StepRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Type      StepEvent `json:"type"`
	TourID    string    `json:"tour_id"`
	StepID    string    `json:"step_id"`
	Index     int       `json:"index"`
}

// LifecycleHooks defines callbacks for tour observability.
// They run after the regular subscribers of the same event.
type LifecycleHooks struct {
	OnTourEvent func(context.Context, *TourRecord)
	OnStepEvent func(context.Context, *StepRecord)
}
