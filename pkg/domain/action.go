package domain

// Action names understood by Tour.Dispatch.
// Buttons reference them so that renderers never call navigation directly.
const (
	ActionNext     = "next"
	ActionBack     = "back"
	ActionCancel   = "cancel"
	ActionComplete = "complete"
	ActionHide     = "hide"
)

// Actions lists every dispatchable action.
var Actions = []string{ActionNext, ActionBack, ActionCancel, ActionComplete, ActionHide}

// IsAction reports whether name is a known action.
func IsAction(name string) bool {
	for _, a := range Actions {
		if a == name {
			return true
		}
	}
	return false
}
