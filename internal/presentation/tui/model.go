package tui

import (
	"context"
	"strings"

	"github.com/aretw0/tourguide/pkg/adapters/terminal"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/aretw0/tourguide/pkg/tour"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type startMsg struct{}

// Model drives one tour full-screen. The tour must render into the Screen
// passed to New.
type Model struct {
	tour     *tour.Tour
	screen   *Screen
	styles   terminal.Styles
	markdown terminal.MarkdownFunc
	width    int

	confirming bool
	err        error
}

// Option configures a Model.
type Option func(*Model)

// WithStyles overrides terminal.DefaultStyles.
func WithStyles(s terminal.Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithMarkdown sets the step body renderer.
func WithMarkdown(fn terminal.MarkdownFunc) Option {
	return func(m *Model) {
		m.markdown = fn
	}
}

// New creates a Model for t.
func New(t *tour.Tour, screen *Screen, opts ...Option) Model {
	m := Model{
		tour:   t,
		screen: screen,
		styles: terminal.DefaultStyles(),
		width:  80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.markdown == nil {
		m.markdown = terminal.NewMarkdown(m.width - 6)
	}
	return m
}

// Run starts the program and blocks until the tour ends or the user quits.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Model, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	if err != nil {
		return m, err
	}
	return m, m.err
}

// Init starts the tour on the first update.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return startMsg{} }
}

// Err returns the error that stopped the tour, if any.
func (m Model) Err() error {
	return m.err
}

// Confirming reports whether the model waits for a cancel confirmation.
func (m Model) Confirming() bool {
	return m.confirming
}

// Update handles keyboard input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		if err := m.tour.Start(); err != nil {
			m.err = err
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.confirming {
			m.handleConfirmKeys(msg)
		} else if quit := m.handleKeys(msg); quit {
			return m, tea.Quit
		}
	}

	if m.tour.State() == domain.StateDone {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) bool {
	opts := m.tour.Options()

	switch key := msg.String(); key {
	case "ctrl+c", "q":
		m.tour.CancelWith(ports.Accept)
		return true
	case "esc":
		if !opts.ExitOnEsc {
			return false
		}
		if opts.ConfirmCancel {
			m.confirming = true
			return false
		}
		m.tour.CancelWith(ports.Accept)
	case "right", "l", "n", " ", "enter":
		if opts.KeyboardNavigation || key == "enter" || key == " " {
			m.tour.Next()
		}
	case "left", "h", "p":
		if opts.KeyboardNavigation {
			m.tour.Back()
		}
	default:
		// Digits press the step buttons in order
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.press(int(key[0] - '1'))
		}
	}
	return false
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirming = false
		m.tour.CancelWith(ports.Accept)
	case "n", "N", "esc":
		m.confirming = false
	}
}

func (m *Model) press(i int) {
	cur := m.tour.GetCurrentStep()
	if cur == nil {
		return
	}
	buttons := cur.Options().Buttons
	if i >= len(buttons) {
		return
	}
	if err := m.tour.Dispatch(buttons[i].Action); err != nil {
		m.err = err
	}
}

// View renders the step on screen and the key hints.
func (m Model) View() string {
	if m.confirming {
		return m.styles.Box.Width(m.boxWidth()).Render(
			m.styles.Title.Render(m.tour.Options().CancelMessage()) + "\n\n" +
				m.styles.Button.Render("y") + m.styles.Secondary.Render(" yes  ") +
				m.styles.Button.Render("n") + m.styles.Secondary.Render(" no"),
		)
	}

	view, ok := m.screen.Current()
	if !ok {
		return ""
	}
	body, err := m.markdown(view.Text)
	if err != nil {
		body = view.Text
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Frame(view, body, m.boxWidth()),
		m.renderFooter(view),
	)
}

func (m Model) renderFooter(view domain.StepView) string {
	opts := m.tour.Options()
	var hints []string
	if opts.KeyboardNavigation {
		hints = append(hints, m.hint("←/→", " steps"))
	} else {
		hints = append(hints, m.hint("enter", " next"))
	}
	if len(view.Buttons) > 0 {
		hints = append(hints, m.hint("1-9", " buttons"))
	}
	if opts.ExitOnEsc {
		hints = append(hints, m.hint("esc", " exit"))
	}
	hints = append(hints, m.hint("q", " quit"))
	return strings.Join(hints, m.styles.Secondary.Render(" │ "))
}

func (m Model) hint(key, desc string) string {
	return m.styles.Button.Render(key) + m.styles.Secondary.Render(desc)
}

func (m Model) boxWidth() int {
	if m.width > 4 {
		return m.width - 2
	}
	return 0
}
