package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/tour"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager()
	ctx := context.Background()
	count := 1000

	for i := 0; i < count; i++ {
		tr, err := tour.New(nil, domain.TourOptions{TourName: fmt.Sprintf("tour-%d", i)})
		if err != nil {
			t.Fatal(err)
		}
		if err := mgr.Register(tr); err != nil {
			t.Fatal(err)
		}
		if _, err := mgr.Status(ctx, tr.Name()); err != nil {
			t.Fatal(err)
		}
	}

	lockCount := len(mgr.locks)
	t.Logf("Tours touched: %d, Locks Leaked: %d", count, lockCount)

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after use", lockCount)
	}
}
