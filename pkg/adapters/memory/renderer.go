package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
)

// Renderer implements ports.Renderer in memory.
// It keeps every mounted view so tests and headless drivers can inspect what
// would be on screen. Safe for concurrent use.
type Renderer struct {
	mu      sync.RWMutex
	seq     int
	mounted map[ports.Handle]domain.StepView
	order   []ports.Handle
	history []string

	// FailMount makes Mount return an error for the listed step ids.
	FailMount map[string]bool
}

// NewRenderer creates an empty in-memory renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		mounted: make(map[ports.Handle]domain.StepView),
	}
}

// Mount records the view and returns a fresh handle.
func (r *Renderer) Mount(view domain.StepView) (ports.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailMount[view.StepID] {
		return "", fmt.Errorf("anchor not found for step %s", view.StepID)
	}

	r.seq++
	h := ports.Handle(fmt.Sprintf("mount-%d", r.seq))
	r.mounted[h] = view
	r.order = append(r.order, h)
	r.history = append(r.history, "mount:"+view.StepID)
	return h, nil
}

// Unmount forgets the view behind h. Unknown handles are ignored.
func (r *Renderer) Unmount(h ports.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.mounted[h]
	if !ok {
		return nil
	}
	delete(r.mounted, h)
	for i, o := range r.order {
		if o == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.history = append(r.history, "unmount:"+view.StepID)
	return nil
}

// Mounted returns the ids of the steps currently mounted, in mount order.
func (r *Renderer) Mounted() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.order))
	for _, h := range r.order {
		ids = append(ids, r.mounted[h].StepID)
	}
	return ids
}

// View returns the mounted view of a step, if any.
func (r *Renderer) View(stepID string) (domain.StepView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.mounted {
		if v.StepID == stepID {
			return v, true
		}
	}
	return domain.StepView{}, false
}

// Handles returns the live handles, sorted.
func (r *Renderer) Handles() []ports.Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hs := make([]ports.Handle, 0, len(r.mounted))
	for h := range r.mounted {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })
	return hs
}

// History returns every mount/unmount performed, as "mount:<id>" / "unmount:<id>".
func (r *Renderer) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.history...)
}
