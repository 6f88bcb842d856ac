package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tourguide version ")
}

func TestGraphCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: graph
steps:
  - id: intro
    title: Intro
  - id: extra
    title: Extra
    show_on: beta
`), 0o644))

	out, err := execute(t, "graph", path, "--current", "intro")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "intro")
	assert.Contains(t, out, "extra")
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "starter")
	out, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created tour 'starter'")

	_, err = execute(t, "init", dir)
	assert.Error(t, err)
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tourguide.yaml")
	require.NoError(t, os.WriteFile(path, []byte("redis:\n  prefix: custom:\n"), 0o644))

	_, err := execute(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Equal(t, "custom:", cfg.Redis.Prefix)
}
