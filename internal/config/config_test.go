package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 8080, c.HTTP.Port)
	assert.Equal(t, "tourguide:", c.Redis.Prefix)
	assert.Empty(t, c.Redis.Addr)
	assert.True(t, c.Metrics.Enabled)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tourguide.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
http:
  port: 9000
redis:
  addr: localhost:6379
  ttl: 1m
`), 0o644))

	t.Setenv("TOURGUIDE_HTTP_PORT", "9100")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	flags.Bool("metrics", true, "")
	require.NoError(t, flags.Parse([]string{"--metrics=false"}))

	c, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level, "file beats an unset flag default")
	assert.Equal(t, 9100, c.HTTP.Port, "env beats file")
	assert.Equal(t, "localhost:6379", c.Redis.Addr)
	assert.Equal(t, time.Minute, c.Redis.TTL)
	assert.False(t, c.Metrics.Enabled, "explicit flag beats everything")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}
