package ports

import "github.com/aretw0/tourguide/pkg/domain"

// Handle identifies something a Renderer mounted.
type Handle string

// Renderer mounts and unmounts step views.
// Positioning, styling and missing anchors are its own business.
type Renderer interface {
	// Mount displays the step and returns a handle used to remove it later.
	Mount(view domain.StepView) (Handle, error)

	// Unmount removes a previously mounted view. Unknown handles are ignored.
	Unmount(h Handle) error
}

// NopRenderer renders nothing.
type NopRenderer struct{}

func (NopRenderer) Mount(view domain.StepView) (Handle, error) { return Handle(view.StepID), nil }
func (NopRenderer) Unmount(Handle) error                       { return nil }
