package domain

// TourOptions configures a tour.
type TourOptions struct {
	// TourName is the human-readable prefix of the tour id. Defaults to DefaultTourName.
	TourName string

	// DefaultStepOptions is merged under every step added to the tour.
	DefaultStepOptions StepOptions

	// ConfirmCancel asks the confirmer before a cancel proceeds.
	ConfirmCancel        bool
	ConfirmCancelMessage string

	// Steps are added, in order, when the tour is constructed.
	Steps []StepOptions

	// KeyboardNavigation and ExitOnEsc are honoured by interactive drivers.
	KeyboardNavigation bool
	ExitOnEsc          bool
}

// CancelMessage returns the confirmation message, falling back to the default.
func (o TourOptions) CancelMessage() string {
	if o.ConfirmCancelMessage != "" {
		return o.ConfirmCancelMessage
	}
	return DefaultConfirmCancelMessage
}

// Name returns TourName or the default name.
func (o TourOptions) Name() string {
	if o.TourName != "" {
		return o.TourName
	}
	return DefaultTourName
}
