package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/tourguide/pkg/adapters/memory"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/registry"
	"github.com/aretw0/tourguide/pkg/session"
	"github.com/aretw0/tourguide/pkg/tour"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg := registry.NewActive()
	m := session.NewManager()

	tr, err := tour.New(reg, domain.TourOptions{
		TourName:      "welcome",
		ConfirmCancel: true,
		Steps: []domain.StepOptions{
			{ID: "a", Title: "A"},
			{ID: "b", Title: "B"},
		},
	}, tour.WithRenderer(memory.NewRenderer()))
	require.NoError(t, err)
	require.NoError(t, m.Register(tr))

	other, err := tour.New(reg, domain.TourOptions{
		TourName: "other",
		Steps:    []domain.StepOptions{{ID: "x", Title: "X"}},
	})
	require.NoError(t, err)
	require.NoError(t, m.Register(other))

	return NewServer(m)
}

func TestServer_Navigation(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	st, err := s.handleStart(ctx, req, TourArgs{Name: "welcome"})
	require.NoError(t, err)
	assert.True(t, st.Active)
	assert.Equal(t, "a", st.Current.StepID)

	st, err = s.dispatcher(domain.ActionNext)(ctx, req, TourArgs{Name: "welcome"})
	require.NoError(t, err)
	assert.Equal(t, "b", st.Current.StepID)

	st, err = s.dispatcher(domain.ActionBack)(ctx, req, TourArgs{Name: "welcome"})
	require.NoError(t, err)
	assert.Equal(t, "a", st.Current.StepID)

	st, err = s.handleShow(ctx, req, TourArgs{Name: "welcome", Key: "1"})
	require.NoError(t, err)
	assert.Equal(t, "b", st.Current.StepID)

	st, err = s.dispatcher(domain.ActionHide)(ctx, req, TourArgs{Name: "welcome"})
	require.NoError(t, err)
	assert.False(t, st.Open)

	st, err = s.dispatcher(domain.ActionComplete)(ctx, req, TourArgs{Name: "welcome"})
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, st.State)
}

func TestServer_StartRejected(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleStart(ctx, mcp.CallToolRequest{}, TourArgs{Name: "welcome"})
	require.NoError(t, err)

	_, err = s.handleStart(ctx, mcp.CallToolRequest{}, TourArgs{Name: "other"})
	assert.ErrorIs(t, err, domain.ErrAnotherTourActive)

	_, err = s.handleStatus(ctx, mcp.CallToolRequest{}, TourArgs{Name: "missing"})
	assert.ErrorIs(t, err, domain.ErrTourNotFound)
}

func TestServer_Cancel(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	_, err := s.handleStart(ctx, mcp.CallToolRequest{}, TourArgs{Name: "welcome"})
	require.NoError(t, err)

	no := false
	resp, err := s.handleCancel(ctx, mcp.CallToolRequest{}, TourArgs{Name: "welcome", Confirm: &no})
	require.NoError(t, err)
	assert.False(t, resp.Cancelled)
	assert.True(t, resp.Status.Active)

	resp, err = s.handleCancel(ctx, mcp.CallToolRequest{}, TourArgs{Name: "welcome"})
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.False(t, resp.Status.Active)
}

func TestServer_List(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.handleList(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	require.Len(t, resp.Tours, 2)
	assert.Equal(t, "other", resp.Tours[0].Name)
}

func TestServer_ToolsRegistered(t *testing.T) {
	s := newTestServer(t)

	msg := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`,
	))
	out, err := json.Marshal(msg)
	require.NoError(t, err)

	for _, name := range []string{
		"list_tours", "tour_status", "start_tour", "next_step", "back_step",
		"show_step", "hide_step", "cancel_tour", "complete_tour",
	} {
		assert.Contains(t, string(out), `"`+name+`"`)
	}
}
