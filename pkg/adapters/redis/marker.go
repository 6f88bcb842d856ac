package redis

import (
	"github.com/aretw0/tourguide/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Marker implements ports.Marker by writing the active tour id to a key, so
// dashboards and other services can see which tour is running.
type Marker struct {
	client *backend.Client
	cfg    config
	key    string
}

// NewMarker creates a marker writing to <prefix>marker.
func NewMarker(client *backend.Client, opts ...Option) *Marker {
	cfg := newConfig(opts)
	return &Marker{client: client, cfg: cfg, key: cfg.prefix + "marker"}
}

var _ ports.Marker = (*Marker)(nil)

// SetActive implements ports.Marker.
func (m *Marker) SetActive(tourID string) {
	ctx, cancel := m.cfg.ctx()
	defer cancel()
	if err := m.client.Set(ctx, m.key, tourID, m.cfg.ttl).Err(); err != nil {
		m.cfg.logger.Warn("redis marker set failed", "tour", tourID, "err", err)
	}
}

// Clear implements ports.Marker.
func (m *Marker) Clear() {
	ctx, cancel := m.cfg.ctx()
	defer cancel()
	if err := m.client.Del(ctx, m.key).Err(); err != nil {
		m.cfg.logger.Warn("redis marker clear failed", "err", err)
	}
}
