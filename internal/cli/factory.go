package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/tourguide"
	redisAdapter "github.com/aretw0/tourguide/pkg/adapters/redis"
	"github.com/aretw0/tourguide/pkg/adapters/terminal"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/observability"
	"github.com/aretw0/tourguide/pkg/ports"
	goredis "github.com/redis/go-redis/v9"
)

// RedisOptions selects the cross-process registry. Empty Addr keeps tours in process.
type RedisOptions struct {
	Addr   string
	Prefix string
	TTL    time.Duration
}

// NewRedisClient connects to opts.Addr and checks the connection.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: opts.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

func redisOptions(opts RedisOptions, logger *slog.Logger) []redisAdapter.Option {
	out := []redisAdapter.Option{redisAdapter.WithLogger(logger), redisAdapter.WithTTL(opts.TTL)}
	if opts.Prefix != "" {
		out = append(out, redisAdapter.WithPrefix(opts.Prefix))
	}
	return out
}

// guideConfig collects the pieces createGuide wires.
type guideConfig struct {
	vars      map[string]any
	renderer  ports.Renderer
	confirmer ports.Confirmer
	out       io.Writer
	redis     *goredis.Client
	redisOpts RedisOptions
	hooks     []domain.LifecycleHooks
	debug     bool
}

// createGuide builds a Guide with the CLI conventions: a window-title marker
// and the Redis registry when a client is given. Debug mode logs every event.
func createGuide(cfg guideConfig, logger *slog.Logger) *tourguide.Guide {
	hooks := cfg.hooks
	if cfg.debug {
		hooks = append([]domain.LifecycleHooks{observability.LogHooks(logger)}, hooks...)
	}

	opts := []tourguide.Option{
		tourguide.WithLogger(logger),
		tourguide.WithVars(cfg.vars),
		tourguide.WithLifecycleHooks(observability.Chain(hooks...)),
	}
	if cfg.renderer != nil {
		opts = append(opts, tourguide.WithRenderer(cfg.renderer))
	}
	if cfg.confirmer != nil {
		opts = append(opts, tourguide.WithConfirmer(cfg.confirmer))
	}
	if cfg.redis != nil {
		opts = append(opts, tourguide.WithRegistry(redisAdapter.NewRegistry(cfg.redis, redisOptions(cfg.redisOpts, logger)...)))
	} else if cfg.out != nil {
		opts = append(opts, tourguide.WithMarker(terminal.NewMarker(cfg.out)))
	}
	return tourguide.New(opts...)
}
