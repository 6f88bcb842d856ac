package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tourguide/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secondYAML = `
name: second
steps:
  - title: Only step
`

func definitions(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	first := filepath.Join(dir, "billing.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte(billingYAML), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(secondYAML), 0o644))
	return []string{first, second}
}

func post(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend(context.Background(), ServeOptions{Paths: definitions(t), Metrics: true})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, []string{"billing", "second"}, b.Manager.Names())
	h := b.Handler()

	rec := post(t, h, "/tours/billing/start")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st session.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "intro", st.Current.StepID)

	rec = post(t, h, "/tours/second/start")
	assert.Equal(t, http.StatusConflict, rec.Code, "one tour at a time across the manager")

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tourguide_tour_events_total{event="start",tour="billing"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNewBackend_MetricsDisabled(t *testing.T) {
	b, err := NewBackend(context.Background(), ServeOptions{Paths: definitions(t)})
	require.NoError(t, err)
	defer b.Close()

	assert.Nil(t, b.Metrics)
	assert.Equal(t, http.StatusNotFound, get(t, b.Handler(), "/metrics").Code)
}

func TestNewBackend_Errors(t *testing.T) {
	_, err := NewBackend(context.Background(), ServeOptions{})
	assert.ErrorContains(t, err, "no tour definitions")

	paths := definitions(t)
	_, err = NewBackend(context.Background(), ServeOptions{Paths: []string{paths[0], paths[0]}})
	assert.ErrorContains(t, err, "billing.yaml")

	_, err = NewBackend(context.Background(), ServeOptions{Paths: paths, Vars: "[1"})
	assert.ErrorContains(t, err, "--vars")
}

func TestNewBackend_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	opts := ServeOptions{Paths: definitions(t), Redis: RedisOptions{Addr: mr.Addr(), Prefix: "srv:"}}

	first, err := NewBackend(context.Background(), opts)
	require.NoError(t, err)
	defer first.Close()
	other, err := NewBackend(context.Background(), opts)
	require.NoError(t, err)
	defer other.Close()

	require.Equal(t, http.StatusOK, post(t, first.Handler(), "/tours/second/start").Code)
	assert.True(t, mr.Exists("srv:active"))

	assert.Equal(t, http.StatusConflict, post(t, other.Handler(), "/tours/billing/start").Code,
		"the slot is shared between processes")

	require.Equal(t, http.StatusOK, post(t, first.Handler(), "/tours/second/complete").Code)
	assert.False(t, mr.Exists("srv:active"))
	assert.Equal(t, http.StatusOK, post(t, other.Handler(), "/tours/billing/start").Code)
}
