package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aretw0/tourguide/pkg/adapters/memory"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/tour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer is a bytes.Buffer safe for a writer goroutine and a polling test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(nil))
	assert.NoError(t, handleExecutionError(context.Canceled))
	assert.NoError(t, handleExecutionError(io.EOF))

	boom := errors.New("boom")
	assert.ErrorIs(t, handleExecutionError(boom), boom)
}

func TestCreateLogger(t *testing.T) {
	for _, level := range []string{"", "off", "debug", "info", "warn", "error"} {
		logger, err := createLogger(level)
		require.NoError(t, err, level)
		assert.NotNil(t, logger)
	}

	_, err := createLogger("chatty")
	assert.Error(t, err)
}

func TestLineConfirmer(t *testing.T) {
	t.Run("Retries Then Accepts", func(t *testing.T) {
		lines := make(chan string, 3)
		lines <- "what"
		lines <- "yes"
		var out bytes.Buffer

		assert.True(t, lineConfirmer(context.Background(), lines, &out).Confirm("Stop?"))
		assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("Stop? [y/N]")))
	})

	t.Run("Empty Answer Declines", func(t *testing.T) {
		lines := make(chan string, 1)
		lines <- ""
		assert.False(t, lineConfirmer(context.Background(), lines, io.Discard).Confirm("Stop?"))
	})

	t.Run("Gives Up After Three Attempts", func(t *testing.T) {
		lines := make(chan string, 4)
		for range 4 {
			lines <- "?"
		}
		assert.False(t, lineConfirmer(context.Background(), lines, io.Discard).Confirm("Stop?"))
		assert.Len(t, lines, 1)
	})

	t.Run("Closed Feed Declines", func(t *testing.T) {
		lines := make(chan string)
		close(lines)
		assert.False(t, lineConfirmer(context.Background(), lines, io.Discard).Confirm("Stop?"))
	})

	t.Run("Cancelled Context Declines", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.False(t, lineConfirmer(ctx, make(chan string), io.Discard).Confirm("Stop?"))
	})
}

func TestCreateGuide_Hooks(t *testing.T) {
	var events []domain.TourEvent
	hooks := domain.LifecycleHooks{
		OnTourEvent: func(_ context.Context, r *domain.TourRecord) {
			events = append(events, r.Type)
		},
	}

	logger, err := createLogger("debug")
	require.NoError(t, err)
	g := createGuide(guideConfig{
		renderer: memory.NewRenderer(),
		hooks:    []domain.LifecycleHooks{hooks},
		debug:    true,
	}, logger)

	tr, err := g.NewTour(domain.TourOptions{TourName: "hooks"})
	require.NoError(t, err)
	_, err = tr.AddStep(tour.FromOptions(domain.StepOptions{ID: "only", Title: "Only"}))
	require.NoError(t, err)
	require.NoError(t, tr.Start())
	tr.Next()

	assert.Contains(t, events, domain.TourStart)
	assert.Contains(t, events, domain.TourComplete)
}
