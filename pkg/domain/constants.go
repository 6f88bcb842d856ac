package domain

const (
	// DefaultTourName is used for tour ids when TourOptions.TourName is empty.
	DefaultTourName = "tour"

	// DefaultConfirmCancelMessage is shown when ConfirmCancel is set without a message.
	DefaultConfirmCancelMessage = "Are you sure you want to stop the tour?"

	// StepIDPrefix prefixes generated step ids.
	StepIDPrefix = "step"
)
