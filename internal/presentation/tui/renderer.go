package tui

import (
	"fmt"
	"sync"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
)

// Screen is the ports.Renderer behind the TUI. It keeps the single view a
// full-screen program can show; the Model reads it when drawing.
type Screen struct {
	mu     sync.Mutex
	seq    int
	handle ports.Handle
	view   *domain.StepView
}

// NewScreen returns an empty screen.
func NewScreen() *Screen {
	return &Screen{}
}

var _ ports.Renderer = (*Screen)(nil)

// Mount replaces whatever is on screen.
func (s *Screen) Mount(view domain.StepView) (ports.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.handle = ports.Handle(fmt.Sprintf("screen-%d", s.seq))
	s.view = &view
	return s.handle, nil
}

// Unmount clears the screen if h is still the mounted view.
func (s *Screen) Unmount(h ports.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h == s.handle {
		s.view = nil
		s.handle = ""
	}
	return nil
}

// Current returns the mounted view.
func (s *Screen) Current() (domain.StepView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return domain.StepView{}, false
	}
	return *s.view, true
}
