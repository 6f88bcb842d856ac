package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/tourguide/pkg/schema"
)

// Loader adapts a Loam repository to tour definitions.
type Loader struct {
	Repo *loam.TypedRepository[StepMetadata]
	Name string // default tour name when no header sets one
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[StepMetadata], name string) *Loader {
	return &Loader{
		Repo: repo,
		Name: name,
	}
}

// Open initializes a read-only Loam repository at dir.
// The tour is named after the directory unless a header document says otherwise.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Read-only keeps Loam from sandboxing or writing to the directory.
	repo, err := loam.Init(absPath, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[StepMetadata](repo), filepath.Base(absPath)), nil
}

// Create initializes a writable Loam repository at dir, creating the
// directory when needed. Versioning stays off: the files are plain content.
func Create(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, err
	}

	repo, err := loam.Init(absPath, loam.WithVersioning(false), loam.WithForceTemp(false))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[StepMetadata](repo), filepath.Base(absPath)), nil
}

// HeaderID is the document Save writes tour-level settings to.
const HeaderID = "_tour"

// Save writes def as one document per step plus a header document. Steps
// get an order matching their position, so Load returns them as given.
func (l *Loader) Save(ctx context.Context, def *schema.Tour) error {
	header, err := headerOf(def)
	if err != nil {
		return err
	}
	if err := l.Repo.Save(ctx, &loam.DocumentModel[StepMetadata]{
		ID:   HeaderID,
		Data: StepMetadata{Tour: header},
	}); err != nil {
		return fmt.Errorf("save %s: %w", HeaderID, err)
	}

	for i, step := range def.Steps {
		if step.ID == "" {
			step.ID = fmt.Sprintf("step-%02d", i+1)
		}
		step.Order = i + 1
		body := step.Text
		step.Text = ""

		if err := l.Repo.Save(ctx, &loam.DocumentModel[StepMetadata]{
			ID:      step.ID,
			Content: body,
			Data:    StepMetadata{Step: step},
		}); err != nil {
			return fmt.Errorf("save step %s: %w", step.ID, err)
		}
	}
	return nil
}

// headerOf returns the tour-level fields of def as a generic map.
func headerOf(def *schema.Tour) (map[string]any, error) {
	top := *def
	top.Steps = nil
	data, err := json.Marshal(top)
	if err != nil {
		return nil, err
	}
	var header map[string]any
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, err
	}
	delete(header, "steps")
	return header, nil
}

// Load reads every document and assembles the definition.
func (l *Loader) Load(ctx context.Context) (*schema.Tour, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	def := &schema.Tour{}
	headerFrom := ""
	seen := make(map[string]string)

	for _, doc := range docs {
		if doc.Data.Tour != nil {
			if headerFrom != "" {
				return nil, fmt.Errorf("tour header is defined in both '%s' and '%s'", headerFrom, doc.ID)
			}
			header, err := schema.Decode(doc.Data.Tour)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", doc.ID, err)
			}
			steps := def.Steps
			*def = *header
			def.Steps = append(steps, header.Steps...)
			headerFrom = doc.ID
			continue
		}

		step := doc.Data.Step
		if step.ID == "" {
			step.ID = trimExtension(doc.ID)
		}
		if existingPath, ok := seen[step.ID]; ok {
			return nil, fmt.Errorf("collision detected: step '%s' is defined in both '%s' and '%s'", step.ID, existingPath, doc.ID)
		}
		seen[step.ID] = doc.ID

		if step.Text == "" {
			step.Text = strings.TrimSpace(doc.Content)
		}
		def.Steps = append(def.Steps, step)
	}

	sort.SliceStable(def.Steps, func(i, j int) bool {
		a, b := def.Steps[i], def.Steps[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})

	if def.Name == "" {
		def.Name = l.Name
	}
	return def, nil
}

// Watch reports the ids of documents that change.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
