package events

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type evt string

const (
	evtA evt = "a"
	evtB evt = "b"
)

func TestEmitter_OrderAndPayload(t *testing.T) {
	e := New[evt, int](nil)
	var got []string

	e.On(evtA, func(p int) { got = append(got, "first") })
	e.On(evtA, func(p int) { got = append(got, "second") })
	e.OnAny(func(p int) { got = append(got, "any") })
	e.On(evtB, func(p int) { got = append(got, "b") })

	e.Trigger(evtA, 7)

	assert.Equal(t, []string{"first", "second", "any"}, got)
}

func TestEmitter_PayloadPassedThrough(t *testing.T) {
	e := New[evt, string](nil)
	var got string
	e.On(evtA, func(p string) { got = p })

	e.Trigger(evtA, "hello")
	assert.Equal(t, "hello", got)
}

func TestEmitter_UnknownEventIsNoop(t *testing.T) {
	e := New[evt, int](nil)
	assert.NotPanics(t, func() { e.Trigger("nope", 1) })
	assert.NotPanics(t, func() { e.Off("nope") })
}

func TestEmitter_Off(t *testing.T) {
	e := New[evt, int](nil)
	calls := 0
	id1 := e.On(evtA, func(int) { calls++ })
	e.On(evtA, func(int) { calls += 10 })

	e.Off(evtA, id1)
	e.Trigger(evtA, 0)
	assert.Equal(t, 10, calls)

	e.Off(evtA)
	e.Trigger(evtA, 0)
	assert.Equal(t, 10, calls)
	assert.Equal(t, 0, e.Len(evtA))
}

func TestEmitter_Once(t *testing.T) {
	e := New[evt, int](nil)
	calls := 0
	e.Once(evtA, func(int) { calls++ })

	e.Trigger(evtA, 0)
	e.Trigger(evtA, 0)
	assert.Equal(t, 1, calls)
}

func TestEmitter_OnceReentrant(t *testing.T) {
	e := New[evt, int](nil)
	calls := 0
	e.Once(evtA, func(int) {
		calls++
		e.Trigger(evtA, 0)
	})

	e.Trigger(evtA, 0)
	assert.Equal(t, 1, calls)
}

func TestEmitter_SubscribeDuringDispatch(t *testing.T) {
	e := New[evt, int](nil)
	late := 0
	e.On(evtA, func(int) {
		e.On(evtA, func(int) { late++ })
	})

	e.Trigger(evtA, 0)
	assert.Equal(t, 0, late, "handlers added during dispatch wait for the next trigger")

	e.Trigger(evtA, 0)
	assert.Equal(t, 1, late)
}

func TestEmitter_PanicIsolated(t *testing.T) {
	e := New[evt, int](nil)
	reached := false
	e.On(evtA, func(int) { panic("boom") })
	e.On(evtA, func(int) { reached = true })

	assert.NotPanics(t, func() { e.Trigger(evtA, 0) })
	assert.True(t, reached)
}

func TestEmitter_SetLogger(t *testing.T) {
	e := New[evt, int](nil)
	e.On(evtA, func(int) { panic("boom") })
	e.Trigger(evtA, 0)

	var buf bytes.Buffer
	e.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	e.Trigger(evtA, 0)
	assert.Contains(t, buf.String(), "event handler panicked")
	assert.Contains(t, buf.String(), "panic=boom")
}

func TestEmitter_Clear(t *testing.T) {
	e := New[evt, int](nil)
	calls := 0
	e.On(evtA, func(int) { calls++ })
	e.OnAny(func(int) { calls++ })

	e.Clear()
	e.Trigger(evtA, 0)
	assert.Equal(t, 0, calls)
}
