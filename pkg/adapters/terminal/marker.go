package terminal

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Marker implements ports.Marker by setting the terminal window title.
type Marker struct {
	out    *termenv.Output
	prefix string
}

// NewMarker writes title escapes to w (os.Stdout when nil).
func NewMarker(w io.Writer) *Marker {
	if w == nil {
		w = os.Stdout
	}
	return &Marker{out: termenv.NewOutput(w), prefix: "tour: "}
}

// SetActive implements ports.Marker.
func (m *Marker) SetActive(tourID string) {
	m.out.SetWindowTitle(m.prefix + tourID)
}

// Clear implements ports.Marker.
func (m *Marker) Clear() {
	m.out.SetWindowTitle("")
}
