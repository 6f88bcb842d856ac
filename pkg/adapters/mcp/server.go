package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tourguide"
	"github.com/aretw0/tourguide/internal/logging"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToursURI is the resource listing every registered tour.
const ToursURI = "tourguide://tours"

// TourArgs are the arguments shared by the navigation tools.
type TourArgs struct {
	Name    string `json:"name"`
	Key     string `json:"key,omitempty"`
	Confirm *bool  `json:"confirm,omitempty"`
}

// ToursResponse wraps the tour list so the tool output is a JSON object.
type ToursResponse struct {
	Tours []session.Status `json:"tours"`
}

// CancelResponse reports the outcome of cancel_tour.
type CancelResponse struct {
	Cancelled bool           `json:"cancelled" jsonschema_description:"False when the confirmation was declined or the tour was not running"`
	Status    session.Status `json:"status"`
}

// Server exposes a session.Manager as an MCP Server.
type Server struct {
	manager   *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(m *session.Manager, opts ...Option) *Server {
	s := &Server{
		manager:   m,
		mcpServer: server.NewMCPServer("tourguide-mcp", strings.TrimSpace(tourguide.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
// It shuts down gracefully when ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func nameArg() mcp.ToolOption {
	return mcp.WithString("name", mcp.Required(), mcp.Description("Name of the tour"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_tours",
		mcp.WithDescription("List the registered tours with their state and current step."),
		mcp.WithOutputSchema[ToursResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("tour_status",
		mcp.WithDescription("Describe a tour: state, whether it is active, and the step on screen."),
		nameArg(),
		mcp.WithOutputSchema[session.Status](),
	), mcp.NewStructuredToolHandler(s.handleStatus))

	s.mcpServer.AddTool(mcp.NewTool("start_tour",
		mcp.WithDescription("Start a tour at its first eligible step. Fails while another tour is active."),
		nameArg(),
		mcp.WithOutputSchema[session.Status](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	for _, nav := range []struct {
		tool, action, desc string
	}{
		{"next_step", domain.ActionNext, "Advance to the next eligible step. Completes the tour after the last one."},
		{"back_step", domain.ActionBack, "Go back to the previous eligible step."},
		{"hide_step", domain.ActionHide, "Hide the current step without leaving the tour."},
		{"complete_tour", domain.ActionComplete, "Finish the tour."},
	} {
		s.mcpServer.AddTool(mcp.NewTool(nav.tool,
			mcp.WithDescription(nav.desc),
			nameArg(),
			mcp.WithOutputSchema[session.Status](),
		), mcp.NewStructuredToolHandler(s.dispatcher(nav.action)))
	}

	s.mcpServer.AddTool(mcp.NewTool("show_step",
		mcp.WithDescription("Show a step by id, or by zero-based index."),
		nameArg(),
		mcp.WithString("key", mcp.Required(), mcp.Description("Step id or index")),
		mcp.WithOutputSchema[session.Status](),
	), mcp.NewStructuredToolHandler(s.handleShow))

	s.mcpServer.AddTool(mcp.NewTool("cancel_tour",
		mcp.WithDescription("Cancel a tour. Tours that confirm cancellation stay active unless confirm is true."),
		nameArg(),
		mcp.WithBoolean("confirm", mcp.Description("Answer to the confirmation prompt (default true)")),
		mcp.WithOutputSchema[CancelResponse](),
	), mcp.NewStructuredToolHandler(s.handleCancel))
}

func (s *Server) handleList(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (ToursResponse, error) {
	tours, err := s.statuses(ctx)
	return ToursResponse{Tours: tours}, err
}

func (s *Server) handleStatus(ctx context.Context, _ mcp.CallToolRequest, args TourArgs) (session.Status, error) {
	return s.manager.Status(ctx, args.Name)
}

func (s *Server) handleStart(ctx context.Context, _ mcp.CallToolRequest, args TourArgs) (session.Status, error) {
	st, err := s.manager.Start(ctx, args.Name)
	if errors.Is(err, domain.ErrAnotherTourActive) {
		s.logger.Info("MCP start rejected", "tour", args.Name, "err", err)
	}
	return st, err
}

func (s *Server) dispatcher(action string) func(context.Context, mcp.CallToolRequest, TourArgs) (session.Status, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args TourArgs) (session.Status, error) {
		return s.manager.Dispatch(ctx, args.Name, action)
	}
}

func (s *Server) handleShow(ctx context.Context, _ mcp.CallToolRequest, args TourArgs) (session.Status, error) {
	return s.manager.Show(ctx, args.Name, args.Key)
}

func (s *Server) handleCancel(ctx context.Context, _ mcp.CallToolRequest, args TourArgs) (CancelResponse, error) {
	confirm := true
	if args.Confirm != nil {
		confirm = *args.Confirm
	}
	st, cancelled, err := s.manager.Cancel(ctx, args.Name, confirm)
	return CancelResponse{Cancelled: cancelled, Status: st}, err
}

func (s *Server) statuses(ctx context.Context) ([]session.Status, error) {
	names := s.manager.Names()
	out := make([]session.Status, 0, len(names))
	for _, name := range names {
		st, err := s.manager.Status(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ToursURI, "Registered tours",
		mcp.WithResourceDescription("Every tour known to the server with its current status"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		tours, err := s.statuses(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tours: %w", err)
		}
		jsonBytes, err := json.Marshal(tours)
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ToursURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
