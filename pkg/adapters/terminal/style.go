package terminal

import (
	"fmt"
	"strings"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

// Styles groups the lipgloss styles used to draw a step.
type Styles struct {
	Box       lipgloss.Style
	Title     lipgloss.Style
	Progress  lipgloss.Style
	Anchor    lipgloss.Style
	Button    lipgloss.Style
	Secondary lipgloss.Style
}

// DefaultStyles returns the indigo theme.
func DefaultStyles() Styles {
	primary := lipgloss.Color("#818cf8")
	subtle := lipgloss.Color("#9ca3af")
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(primary),
		Progress:  lipgloss.NewStyle().Foreground(subtle),
		Anchor:    lipgloss.NewStyle().Foreground(subtle).Italic(true),
		Button:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Secondary: lipgloss.NewStyle().Foreground(subtle),
	}
}

// Header renders "[2/5] Title".
func (s Styles) Header(view domain.StepView) string {
	progress := s.Progress.Render(fmt.Sprintf("[%d/%d]", view.Index+1, view.Total))
	if view.Title == "" {
		return progress
	}
	return progress + " " + s.Title.Render(view.Title)
}

// Buttons renders the button row, each with its action as shortcut.
func (s Styles) Buttons(buttons []domain.Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		label := fmt.Sprintf("[%s]", b.Text)
		if b.Secondary {
			parts = append(parts, s.Secondary.Render(label))
		} else {
			parts = append(parts, s.Button.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// Frame assembles a step box around an already rendered body.
func (s Styles) Frame(view domain.StepView, body string, width int) string {
	var b strings.Builder
	b.WriteString(s.Header(view))
	if view.AttachTo != nil && view.AttachTo.Element != "" {
		b.WriteString("\n")
		b.WriteString(s.Anchor.Render(fmt.Sprintf("@ %s (%s)", view.AttachTo.Element, placement(view.AttachTo.On))))
	}
	if body = strings.TrimSpace(body); body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if len(view.Buttons) > 0 {
		b.WriteString("\n\n")
		b.WriteString(s.Buttons(view.Buttons))
	}

	box := s.Box
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(b.String())
}

func placement(p domain.Placement) domain.Placement {
	if p == "" {
		return domain.PlaceAuto
	}
	return p
}
