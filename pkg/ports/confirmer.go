package ports

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(message string) bool

// Confirm calls f(message).
func (f ConfirmFunc) Confirm(message string) bool {
	return f(message)
}

// Accept is a Confirmer that always agrees.
var Accept Confirmer = ConfirmFunc(func(string) bool { return true })

// Decline is a Confirmer that always refuses.
var Decline Confirmer = ConfirmFunc(func(string) bool { return false })
