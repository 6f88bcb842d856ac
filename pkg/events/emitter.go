package events

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// ID identifies a subscription so it can be removed with Off.
type ID uint64

// Handler receives the payload of a triggered event.
type Handler[P any] func(P)

type subscription[E comparable, P any] struct {
	id      ID
	handler Handler[P]
	once    bool
}

// Emitter is a synchronous, typed publish/subscribe table.
//
// Handlers run on the goroutine calling Trigger, in registration order. Handlers
// subscribed to a specific event run before wildcard handlers. Subscribing,
// unsubscribing or triggering from inside a handler is allowed: each Trigger
// works on a snapshot taken before dispatch.
type Emitter[E comparable, P any] struct {
	mu     sync.Mutex
	subs   map[E][]subscription[E, P]
	any    []subscription[E, P]
	nextID ID
	logger *slog.Logger
}

// New creates an empty emitter. A nil logger discards handler panics silently.
func New[E comparable, P any](logger *slog.Logger) *Emitter[E, P] {
	return &Emitter[E, P]{
		subs:   make(map[E][]subscription[E, P]),
		logger: logger,
	}
}

// On registers handler for event and returns its subscription id.
func (e *Emitter[E, P]) On(event E, handler Handler[P]) ID {
	return e.add(event, handler, false)
}

// Once registers handler for a single delivery of event.
func (e *Emitter[E, P]) Once(event E, handler Handler[P]) ID {
	return e.add(event, handler, true)
}

// OnAny registers handler for every event. The event key is not passed to it;
// payloads are expected to carry their own type.
func (e *Emitter[E, P]) OnAny(handler Handler[P]) ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.any = append(e.any, subscription[E, P]{id: e.nextID, handler: handler})
	return e.nextID
}

func (e *Emitter[E, P]) add(event E, handler Handler[P], once bool) ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.subs[event] = append(e.subs[event], subscription[E, P]{id: e.nextID, handler: handler, once: once})
	return e.nextID
}

// Off removes the given subscriptions of event. With no ids, every handler of
// event is removed. Unknown events and ids are ignored.
func (e *Emitter[E, P]) Off(event E, ids ...ID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(ids) == 0 {
		delete(e.subs, event)
		return
	}
	e.subs[event] = without(e.subs[event], ids)
	if len(e.subs[event]) == 0 {
		delete(e.subs, event)
	}
}

// OffAny removes wildcard subscriptions.
func (e *Emitter[E, P]) OffAny(ids ...ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.any = without(e.any, ids)
}

// Clear removes every subscription, wildcard ones included.
func (e *Emitter[E, P]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = make(map[E][]subscription[E, P])
	e.any = nil
}

// Len returns the number of handlers subscribed to event.
func (e *Emitter[E, P]) Len(event E) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subs[event])
}

// Trigger delivers payload to the handlers of event, then to wildcard handlers.
func (e *Emitter[E, P]) Trigger(event E, payload P) {
	e.mu.Lock()
	specific := make([]subscription[E, P], len(e.subs[event]))
	copy(specific, e.subs[event])

	// One-shot handlers are dropped before dispatch so a reentrant Trigger
	// cannot deliver to them twice.
	var onceIDs []ID
	for _, sub := range specific {
		if sub.once {
			onceIDs = append(onceIDs, sub.id)
		}
	}
	if len(onceIDs) > 0 {
		e.subs[event] = without(e.subs[event], onceIDs)
	}

	wildcard := make([]subscription[E, P], len(e.any))
	copy(wildcard, e.any)
	logger := e.logger
	e.mu.Unlock()

	for _, sub := range specific {
		safeCall(logger, event, sub.handler, payload)
	}
	for _, sub := range wildcard {
		safeCall(logger, event, sub.handler, payload)
	}
}

// SetLogger replaces the logger that reports handler panics.
func (e *Emitter[E, P]) SetLogger(logger *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger = logger
}

func safeCall[E comparable, P any](logger *slog.Logger, event E, handler Handler[P], payload P) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Error("event handler panicked",
				"event", event,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	handler(payload)
}

func without[E comparable, P any](subs []subscription[E, P], ids []ID) []subscription[E, P] {
	if len(subs) == 0 {
		return subs
	}
	drop := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]subscription[E, P], 0, len(subs))
	for _, sub := range subs {
		if _, ok := drop[sub.id]; !ok {
			kept = append(kept, sub)
		}
	}
	return kept
}
