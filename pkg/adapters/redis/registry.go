package redis

import (
	"errors"
	"sync"

	"github.com/aretw0/tourguide/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// activateScript claims the slot when empty and refreshes it for its holder.
var activateScript = backend.NewScript(`
local cur = redis.call("get", KEYS[1])
if cur and cur ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[2]) > 0 then
	redis.call("set", KEYS[1], ARGV[1], "PX", ARGV[2])
else
	redis.call("set", KEYS[1], ARGV[1])
end
return 1
`)

// releaseScript deletes the key only if it still holds ARGV[1].
var releaseScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// remoteTour stands for a tour activated by another process.
type remoteTour struct{ id string }

func (r remoteTour) ID() string { return r.id }

// Registry implements ports.Registry on a single Redis key holding the active
// tour id. Ownership is decided by id, which is unique across processes.
type Registry struct {
	client *backend.Client
	cfg    config
	key    string

	mu    sync.Mutex
	local ports.Activatable // tour activated through this instance
}

// NewRegistry creates a Redis-backed registry.
func NewRegistry(client *backend.Client, opts ...Option) *Registry {
	cfg := newConfig(opts)
	return &Registry{
		client: client,
		cfg:    cfg,
		key:    cfg.prefix + "active",
	}
}

var _ ports.Registry = (*Registry)(nil)

// TryActivate implements ports.Registry.
func (r *Registry) TryActivate(t ports.Activatable) bool {
	ctx, cancel := r.cfg.ctx()
	defer cancel()

	ok, err := activateScript.Run(ctx, r.client, []string{r.key}, t.ID(), r.cfg.ttl.Milliseconds()).Bool()
	if err != nil {
		r.cfg.logger.Error("redis activate failed", "tour", t.ID(), "err", err)
		return false
	}
	if !ok {
		r.cfg.logger.Debug("activation rejected", "tour", t.ID())
		return false
	}

	r.mu.Lock()
	r.local = t
	r.mu.Unlock()
	return true
}

// Deactivate implements ports.Registry.
func (r *Registry) Deactivate(t ports.Activatable) bool {
	ctx, cancel := r.cfg.ctx()
	defer cancel()

	n, err := releaseScript.Run(ctx, r.client, []string{r.key}, t.ID()).Int()
	if err != nil {
		r.cfg.logger.Error("redis deactivate failed", "tour", t.ID(), "err", err)
		return false
	}

	r.mu.Lock()
	if r.local != nil && r.local.ID() == t.ID() {
		r.local = nil
	}
	r.mu.Unlock()
	return n == 1
}

// Current implements ports.Registry. A tour activated by another process is
// returned as a placeholder carrying only its id.
func (r *Registry) Current() (ports.Activatable, bool) {
	ctx, cancel := r.cfg.ctx()
	defer cancel()

	id, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, backend.Nil) {
		return nil, false
	}
	if err != nil {
		r.cfg.logger.Error("redis current failed", "err", err)
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.local != nil && r.local.ID() == id {
		return r.local, true
	}
	return remoteTour{id: id}, true
}
