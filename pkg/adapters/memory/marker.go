package memory

import "sync"

// Marker implements ports.Marker by remembering the last value.
type Marker struct {
	mu    sync.RWMutex
	value string
	sets  int
}

// NewMarker creates an empty marker.
func NewMarker() *Marker {
	return &Marker{}
}

// SetActive records tourID.
func (m *Marker) SetActive(tourID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = tourID
	m.sets++
}

// Clear removes the recorded id.
func (m *Marker) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = ""
}

// Value returns the current marker, empty when cleared.
func (m *Marker) Value() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// Sets returns how many times SetActive was called.
func (m *Marker) Sets() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sets
}
