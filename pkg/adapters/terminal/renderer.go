package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/charmbracelet/glamour"
)

// MarkdownFunc renders Markdown to terminal text.
type MarkdownFunc func(markdown string) (string, error)

// NewMarkdown returns a glamour renderer wrapping at width columns.
// It detects light and dark backgrounds automatically.
func NewMarkdown(width int) MarkdownFunc {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return PlainText
	}
	return r.Render
}

// PlainText returns markdown untouched.
func PlainText(markdown string) (string, error) {
	return markdown, nil
}

// Renderer implements ports.Renderer by printing step boxes to a writer.
// A terminal cannot erase what scrolled by, so Unmount only forgets the handle.
type Renderer struct {
	mu       sync.Mutex
	out      io.Writer
	width    int
	styles   Styles
	markdown MarkdownFunc
	seq      int
	live     map[ports.Handle]string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWriter sets the destination. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithWidth sets the box width; 0 sizes the box to its content.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		r.width = width
	}
}

// WithStyles overrides DefaultStyles.
func WithStyles(s Styles) Option {
	return func(r *Renderer) {
		r.styles = s
	}
}

// WithMarkdown sets the body renderer. Use PlainText to disable glamour.
func WithMarkdown(fn MarkdownFunc) Option {
	return func(r *Renderer) {
		r.markdown = fn
	}
}

// NewRenderer creates a terminal renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		out:    os.Stdout,
		width:  72,
		styles: DefaultStyles(),
		live:   make(map[ports.Handle]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.markdown == nil {
		r.markdown = NewMarkdown(r.width - 4)
	}
	return r
}

var _ ports.Renderer = (*Renderer)(nil)

// Render formats a view without printing it.
func (r *Renderer) Render(view domain.StepView) string {
	body, err := r.markdown(view.Text)
	if err != nil {
		body = view.Text
	}
	return r.styles.Frame(view, body, r.width)
}

// Mount implements ports.Renderer.
func (r *Renderer) Mount(view domain.StepView) (ports.Handle, error) {
	out := r.Render(view)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintln(r.out, out); err != nil {
		return "", fmt.Errorf("failed to write step %s: %w", view.StepID, err)
	}
	r.seq++
	h := ports.Handle(fmt.Sprintf("%s#%d", view.StepID, r.seq))
	r.live[h] = view.StepID
	return h, nil
}

// Unmount implements ports.Renderer.
func (r *Renderer) Unmount(h ports.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, h)
	return nil
}

// Live returns how many steps are mounted.
func (r *Renderer) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}
