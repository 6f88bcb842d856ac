package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/tourguide"
	httpAdapter "github.com/aretw0/tourguide/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/tourguide/pkg/adapters/mcp"
	redisAdapter "github.com/aretw0/tourguide/pkg/adapters/redis"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/observability"
	"github.com/aretw0/tourguide/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

// ServeOptions configures the serve and mcp commands.
type ServeOptions struct {
	Paths    []string // Tour definitions: files or step directories
	Vars     string
	LogLevel string
	Debug    bool
	Port     int
	Metrics  bool
	Redis    RedisOptions
}

// Backend is a session manager over every tour in ServeOptions.Paths, plus
// what serving it needs.
type Backend struct {
	Manager *session.Manager
	Metrics *prometheus.Registry // nil when metrics are disabled
	Logger  *slog.Logger

	redis *goredis.Client
}

// Close releases the Redis connection, if any.
func (b *Backend) Close() error {
	if b.redis == nil {
		return nil
	}
	return b.redis.Close()
}

// NewBackend loads every definition into one Manager. The tours share a
// registry, so at most one of them is active at a time; with Redis that
// holds across processes and mutations also take a distributed lock.
func NewBackend(ctx context.Context, opts ServeOptions) (*Backend, error) {
	if len(opts.Paths) == 0 {
		return nil, errors.New("no tour definitions given")
	}
	level := opts.LogLevel
	if opts.Debug {
		level = "debug"
	}
	logger, err := createLogger(level)
	if err != nil {
		return nil, err
	}
	vars, err := RunOptions{Vars: opts.Vars}.vars()
	if err != nil {
		return nil, err
	}

	b := &Backend{Logger: logger}
	cfg := guideConfig{vars: vars, redisOpts: opts.Redis, debug: opts.Debug}
	if opts.Metrics {
		b.Metrics = prometheus.NewRegistry()
		b.Metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		cfg.hooks = []domain.LifecycleHooks{observability.NewCollector(b.Metrics).Hooks()}
	}

	mOpts := []session.Option{session.WithLogger(logger)}
	if opts.Redis.Addr != "" {
		b.redis, err = NewRedisClient(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		cfg.redis = b.redis
		mOpts = append(mOpts, session.WithLocker(redisAdapter.NewLocker(b.redis, redisOptions(opts.Redis, logger)...)))
	}

	g := createGuide(cfg, logger)
	b.Manager = session.NewManager(mOpts...)
	for _, path := range opts.Paths {
		t, err := g.LoadTour(ctx, path)
		if err != nil {
			b.Close()
			return nil, err
		}
		if err := b.Manager.Register(t); err != nil {
			b.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("tour registered", "tour", t.Name(), "path", path, "steps", t.Len())
	}
	return b, nil
}

// Handler returns the HTTP API, with /metrics mounted when enabled.
func (b *Backend) Handler() http.Handler {
	router := httpAdapter.NewServer(b.Manager, httpAdapter.WithLogger(b.Logger)).Routes()
	if b.Metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(b.Metrics, promhttp.HandlerOpts{}))
	}
	return router
}

// Serve runs the HTTP API until ctx ends, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions, out io.Writer) error {
	b, err := NewBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           b.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "tourguide %s serving %v on %s", tourguide.Version, b.Manager.Names(), srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		printSystemMessage(out, "Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		return nil
	}
}

// ServeMCP exposes the tours as MCP tools over stdio, or over SSE when sse is set.
func ServeMCP(ctx context.Context, opts ServeOptions, sse bool) error {
	b, err := NewBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	srv := mcpAdapter.NewServer(b.Manager, mcpAdapter.WithLogger(b.Logger))
	if !sse {
		b.Logger.Info("Starting MCP server (stdio)")
		return srv.ServeStdio()
	}
	err = srv.ServeSSE(ctx, opts.Port)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
