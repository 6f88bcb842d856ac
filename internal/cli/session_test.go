package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billingYAML = `
name: billing
confirm_cancel: true
vars:
  user:
    plan: free
steps:
  - id: intro
    title: Welcome
    text: Hello
    buttons:
      - {text: Next, action: next}
  - id: invoices
    title: Invoices
    show_on: user.plan == "pro"
  - id: outro
    title: Goodbye
`

func writeTour(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runScript(t *testing.T, opts RunOptions, script ...string) (string, error) {
	t.Helper()
	if opts.Path == "" {
		opts.Path = writeTour(t, billingYAML)
	}
	opts.Plain = true
	opts.NoBanner = true

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	err := Execute(context.Background(), opts, in, &out)
	return out.String(), err
}

func TestExecute_Complete(t *testing.T) {
	out, err := runScript(t, RunOptions{}, "", "")

	require.NoError(t, err)
	assert.Contains(t, out, "Welcome")
	assert.Contains(t, out, "Goodbye")
	assert.NotContains(t, out, "Invoices", "show_on keeps the step out on the free plan")
	assert.Contains(t, out, "Tour 'billing' completed.")
}

func TestExecute_SetRevealsStep(t *testing.T) {
	out, err := runScript(t, RunOptions{},
		"next",
		`set user.plan="pro"`,
		"back",
		"steps",
		"q",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "user.plan = pro")
	assert.Contains(t, out, "Invoices")
	assert.Contains(t, out, "* 1. invoices")
	assert.Contains(t, out, "Left tour 'billing'.")
}

func TestExecute_VarsFlag(t *testing.T) {
	out, err := runScript(t, RunOptions{Vars: `{"user": {"plan": "pro"}}`}, "next", "q")

	require.NoError(t, err)
	assert.Contains(t, out, "Invoices")
}

func TestExecute_InvalidVars(t *testing.T) {
	_, err := runScript(t, RunOptions{Vars: `{not json`})
	assert.ErrorContains(t, err, "--vars")
}

func TestExecute_CancelConfirmation(t *testing.T) {
	out, err := runScript(t, RunOptions{},
		"cancel",
		"maybe",
		"n",
		"steps",
		"cancel",
		"y",
	)

	require.NoError(t, err)
	assert.Contains(t, out, domain.DefaultConfirmCancelMessage)
	assert.Contains(t, out, "expected y/n/yes/no")
	assert.Contains(t, out, "* 0. intro", "a declined cancel keeps the tour on its step")
	assert.Contains(t, out, "Tour 'billing' cancelled.")
}

func TestExecute_Commands(t *testing.T) {
	out, err := runScript(t, RunOptions{},
		"help",
		"bogus",
		"show nowhere",
		"show 2",
		"7",
		"show intro",
		"1",
		"done",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "set key=value")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, `no step "nowhere"`)
	assert.Contains(t, out, `step "outro" has 0 buttons`)
	assert.Contains(t, out, "Tour 'billing' completed.")
}

func TestExecute_EOF(t *testing.T) {
	opts := RunOptions{Path: writeTour(t, billingYAML), Plain: true, NoBanner: true}
	var out bytes.Buffer

	err := Execute(context.Background(), opts, strings.NewReader(""), &out)
	assert.NoError(t, err, "EOF is a clean exit")
}

func TestExecute_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := RunOptions{Path: writeTour(t, billingYAML), Plain: true, NoBanner: true}
	var out bytes.Buffer
	// An empty pipe never delivers a line, so only ctx can end the session.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { w.Close(); r.Close() })

	err = Execute(ctx, opts, r, &out)
	assert.NoError(t, err)
}

func TestExecute_LoadError(t *testing.T) {
	_, err := runScript(t, RunOptions{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestExecute_RedisRegistry(t *testing.T) {
	mr := miniredis.RunT(t)
	redisOpts := RedisOptions{Addr: mr.Addr(), Prefix: "test:"}

	t.Run("Slot Released On Completion", func(t *testing.T) {
		out, err := runScript(t, RunOptions{Redis: redisOpts}, "", "")
		require.NoError(t, err)
		assert.Contains(t, out, "completed")
		assert.False(t, mr.Exists("test:active"))
	})

	t.Run("Start Rejected While Another Process Holds The Slot", func(t *testing.T) {
		require.NoError(t, mr.Set("test:active", "elsewhere"))
		t.Cleanup(func() { mr.Del("test:active") })

		_, err := runScript(t, RunOptions{Redis: redisOpts})
		assert.ErrorIs(t, err, domain.ErrAnotherTourActive)
	})
}

func TestExecute_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := runScript(t, RunOptions{Redis: RedisOptions{Addr: addr}})
	assert.ErrorContains(t, err, "failed to connect to redis")
}
