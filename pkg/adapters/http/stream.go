package http

import (
	"log/slog"
	"sync"
)

// StreamManager handles active SSE connections, keyed by tour name.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for name. The returned func
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(name string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[name]; !ok {
		sm.subscribers[name] = make(map[chan<- string]struct{})
	}
	sm.subscribers[name][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[name]; ok {
			if _, present := subs[ch]; !present {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, name)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of name without blocking.
func (sm *StreamManager) Broadcast(name string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[name] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "tour", name)
		}
	}
}

// Subscribers reports how many streams listen to name.
func (sm *StreamManager) Subscribers(name string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[name])
}
