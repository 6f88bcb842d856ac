package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/tourguide"
	"github.com/aretw0/tourguide/internal/presentation/tui"
	"github.com/aretw0/tourguide/pkg/adapters/terminal"
	tea "github.com/charmbracelet/bubbletea"
	goredis "github.com/redis/go-redis/v9"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Path     string
	Vars     string // Raw JSON object seeding show_on variables
	LogLevel string
	Debug    bool
	Plain    bool // Skip Markdown rendering
	TUI      bool // Full-screen bubbletea driver
	NoBanner bool
	Width    int
	Redis    RedisOptions
}

func (o RunOptions) logLevel() string {
	if o.Debug {
		return "debug"
	}
	return o.LogLevel
}

func (o RunOptions) vars() (map[string]any, error) {
	if o.Vars == "" {
		return nil, nil
	}
	var vars map[string]any
	if err := json.Unmarshal([]byte(o.Vars), &vars); err != nil {
		return nil, fmt.Errorf("error parsing --vars JSON: %w", err)
	}
	return vars, nil
}

// Execute handles the 'run' command: it loads the tour at opts.Path and
// drives it from in, rendering to out.
func Execute(ctx context.Context, opts RunOptions, in io.Reader, out io.Writer) error {
	logger, err := createLogger(opts.logLevel())
	if err != nil {
		return err
	}
	vars, err := opts.vars()
	if err != nil {
		return err
	}

	cfg := guideConfig{vars: vars, out: out, redisOpts: opts.Redis, debug: opts.Debug}
	if opts.Redis.Addr != "" {
		var client *goredis.Client
		client, err = NewRedisClient(ctx, opts.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		cfg.redis = client
	}

	if opts.TUI {
		return runTUI(ctx, opts, cfg, in, out)
	}

	lines := pumpLines(in)
	rOpts := []terminal.Option{terminal.WithWriter(out)}
	if opts.Width > 0 {
		rOpts = append(rOpts, terminal.WithWidth(opts.Width))
	}
	if opts.Plain {
		rOpts = append(rOpts, terminal.WithMarkdown(terminal.PlainText))
	}
	cfg.renderer = terminal.NewRenderer(rOpts...)
	cfg.confirmer = lineConfirmer(ctx, lines, out)

	g := createGuide(cfg, logger)
	t, err := g.LoadTour(ctx, opts.Path)
	if err != nil {
		return err
	}

	if !opts.NoBanner {
		tui.PrintBanner(out)
		printSystemMessage(out, "tourguide %s", tourguide.Version)
	}
	return handleExecutionError(RunSession(ctx, t, g.Env(), lines, out))
}

func runTUI(ctx context.Context, opts RunOptions, cfg guideConfig, in io.Reader, out io.Writer) error {
	logger, err := createLogger(opts.logLevel())
	if err != nil {
		return err
	}

	screen := tui.NewScreen()
	cfg.renderer = screen
	g := createGuide(cfg, logger)
	t, err := g.LoadTour(ctx, opts.Path)
	if err != nil {
		return err
	}

	var mOpts []tui.Option
	if opts.Plain {
		mOpts = append(mOpts, tui.WithMarkdown(terminal.PlainText))
	}
	_, err = tui.Run(ctx, tui.New(t, screen, mOpts...), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return handleExecutionError(err)
}
