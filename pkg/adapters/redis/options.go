package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/tourguide/internal/logging"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "tourguide:"

type config struct {
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	logger  *slog.Logger
}

func newConfig(opts []Option) config {
	c := config{
		prefix:  DefaultPrefix,
		timeout: 2 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

// Option configures the Redis adapters.
type Option func(*config)

// WithPrefix sets the key prefix (default "tourguide:").
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithTTL makes the active slot expire unless it is refreshed, so a crashed
// process cannot hold it forever. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithTimeout bounds every Redis round trip (default 2s).
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithLogger reports Redis failures, which the port interfaces cannot return.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
