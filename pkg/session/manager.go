package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/tourguide/internal/logging"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/ports"
	"github.com/aretw0/tourguide/pkg/tour"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates access to named tours, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	mu    sync.Mutex            // Global lock for the maps
	tours map[string]*tour.Tour // Registered tours by name
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger // Logger for internal events (like deferred errors)

	subMu   sync.RWMutex
	subs    map[int]func(Status)
	nextSub int
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		tours:   make(map[string]*tour.Tour),
		locks:   make(map[string]*lockEntry),
		subs:    make(map[int]func(Status)),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register makes t reachable by its name.
func (m *Manager) Register(t *tour.Tour) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := t.Name()
	if _, exists := m.tours[name]; exists {
		return fmt.Errorf("register %q: %w", name, domain.ErrTourExists)
	}
	m.tours[name] = t
	return nil
}

// Subscribe registers fn to receive the status of a tour after every
// successful operation that can change it (start, navigation, cancel).
// fn runs on the caller's goroutine once the tour lock is released.
// The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(Status)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) notify(st Status) {
	m.subMu.RLock()
	subs := make([]func(Status), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subMu.RUnlock()

	for _, fn := range subs {
		fn(st)
	}
}

// Names returns the registered tour names, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.tours))
	for name := range m.tours {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the tour registered under name.
// Callers must not navigate it outside WithTour.
func (m *Manager) Get(name string) (*tour.Tour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tours[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, domain.ErrTourNotFound)
	}
	return t, nil
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(name) after unlocking.
func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// WithTour executes fn while holding the lock for the named tour.
func (m *Manager) WithTour(ctx context.Context, name string, fn func(context.Context, *tour.Tour) error) error {
	t, err := m.Get(name)
	if err != nil {
		return err
	}

	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, "tour:"+name, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"tour", name,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx, t)
}

// Status returns a snapshot of the named tour.
func (m *Manager) Status(ctx context.Context, name string) (Status, error) {
	return m.view(ctx, name, func(*tour.Tour) error { return nil })
}

// Start starts the named tour.
func (m *Manager) Start(ctx context.Context, name string) (Status, error) {
	return m.do(ctx, name, func(t *tour.Tour) error { return t.Start() })
}

// Dispatch runs a navigation action (next, back, hide, complete, cancel) on the
// named tour. Cancel goes through the tour's own confirmer.
func (m *Manager) Dispatch(ctx context.Context, name, action string) (Status, error) {
	return m.do(ctx, name, func(t *tour.Tour) error { return t.Dispatch(action) })
}

// Cancel cancels the named tour with a pre-collected answer to the confirmation
// prompt. The boolean reports whether the tour was cancelled.
func (m *Manager) Cancel(ctx context.Context, name string, confirm bool) (Status, bool, error) {
	var cancelled bool
	st, err := m.do(ctx, name, func(t *tour.Tour) error {
		cancelled = t.CancelWith(ports.ConfirmFunc(func(string) bool { return confirm }))
		return nil
	})
	return st, cancelled, err
}

// Show displays a step of the named tour. key is a step id, or a zero-based
// index when it parses as an integer and no step has that id. Tours that are
// not running show nothing.
func (m *Manager) Show(ctx context.Context, name, key string) (Status, error) {
	return m.do(ctx, name, func(t *tour.Tour) error {
		if t.State() != domain.StateActive {
			return nil
		}
		if t.Show(key) {
			return nil
		}
		if i, err := strconv.Atoi(key); err == nil && t.ShowAt(i) {
			return nil
		}
		return fmt.Errorf("%q in %q: %w", key, name, domain.ErrStepNotFound)
	})
}

// Active returns the status of the registered tour currently holding the
// active slot, if any.
func (m *Manager) Active(ctx context.Context) (Status, bool, error) {
	for _, name := range m.Names() {
		st, err := m.Status(ctx, name)
		if err != nil {
			return Status{}, false, err
		}
		if st.Active {
			return st, true, nil
		}
	}
	return Status{}, false, nil
}

// do runs a mutating operation and notifies subscribers when it succeeds.
func (m *Manager) do(ctx context.Context, name string, fn func(*tour.Tour) error) (Status, error) {
	st, err := m.view(ctx, name, fn)
	if err == nil {
		m.notify(st)
	}
	return st, err
}

func (m *Manager) view(ctx context.Context, name string, fn func(*tour.Tour) error) (Status, error) {
	var st Status
	err := m.WithTour(ctx, name, func(_ context.Context, t *tour.Tour) error {
		opErr := fn(t)
		st = Snapshot(t)
		return opErr
	})
	return st, err
}
