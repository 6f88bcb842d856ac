package ports

// Marker mirrors the id of the active tour somewhere outside the engine
// (a body attribute, a status line, a shared key). It is write-only:
// the engine never reads it back to take decisions.
type Marker interface {
	SetActive(tourID string)
	Clear()
}

// NopMarker discards marker updates.
type NopMarker struct{}

func (NopMarker) SetActive(string) {}
func (NopMarker) Clear()           {}
