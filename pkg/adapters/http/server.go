package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/tourguide"
	"github.com/aretw0/tourguide/internal/logging"
	"github.com/aretw0/tourguide/pkg/domain"
	"github.com/aretw0/tourguide/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the tours held by a session.Manager.
type Server struct {
	Manager *session.Manager
	Streams *StreamManager
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server for m.
func NewServer(m *session.Manager, opts ...Option) *Server {
	s := &Server{
		Manager: m,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	m.Subscribe(s.broadcast)
	return s
}

// NewHandler creates a new HTTP handler for the manager.
func NewHandler(m *session.Manager, opts ...Option) http.Handler {
	return NewServer(m, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/active", s.GetActive)

	r.Route("/tours", func(r chi.Router) {
		r.Get("/", s.ListTours)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetTour)
			r.Get("/events", s.SubscribeEvents)
			r.Post("/start", s.Start)
			r.Post("/cancel", s.Cancel)
			r.Post("/show/{key}", s.Show)
			r.Post("/{action}", s.Dispatch)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "tourguide-http",
		"version": strings.TrimSpace(tourguide.Version),
	})
}

// ListTours handles GET /tours.
func (s *Server) ListTours(w http.ResponseWriter, r *http.Request) {
	names := s.Manager.Names()
	out := make([]session.Status, 0, len(names))
	for _, name := range names {
		st, err := s.Manager.Status(r.Context(), name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		out = append(out, st)
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetTour handles GET /tours/{name}.
func (s *Server) GetTour(w http.ResponseWriter, r *http.Request) {
	st, err := s.Manager.Status(r.Context(), chi.URLParam(r, "name"))
	s.respond(w, st, err)
}

// GetActive handles GET /active. It answers 204 when no tour is active.
func (s *Server) GetActive(w http.ResponseWriter, r *http.Request) {
	st, ok, err := s.Manager.Active(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

// Start handles POST /tours/{name}/start.
func (s *Server) Start(w http.ResponseWriter, r *http.Request) {
	st, err := s.Manager.Start(r.Context(), chi.URLParam(r, "name"))
	s.respond(w, st, err)
}

// Dispatch handles POST /tours/{name}/{action} for the button actions.
func (s *Server) Dispatch(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	if action == domain.ActionCancel {
		s.Cancel(w, r)
		return
	}
	st, err := s.Manager.Dispatch(r.Context(), chi.URLParam(r, "name"), action)
	s.respond(w, st, err)
}

// CancelRequest is the body of POST /tours/{name}/cancel.
// Confirm answers the confirmation prompt of tours that ask for one.
type CancelRequest struct {
	Confirm bool `json:"confirm"`
}

// CancelResponse reports whether the tour was cancelled.
type CancelResponse struct {
	Cancelled bool           `json:"cancelled"`
	Status    session.Status `json:"status"`
}

// Cancel handles POST /tours/{name}/cancel. An empty body counts as confirmed.
func (s *Server) Cancel(w http.ResponseWriter, r *http.Request) {
	body := CancelRequest{Confirm: true}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.logger.Warn("Cancel: Invalid request body", "err", err)
			return
		}
	}

	name := chi.URLParam(r, "name")
	st, cancelled, err := s.Manager.Cancel(r.Context(), name, body.Confirm)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, CancelResponse{Cancelled: cancelled, Status: st})
}

// Show handles POST /tours/{name}/show/{key}.
func (s *Server) Show(w http.ResponseWriter, r *http.Request) {
	st, err := s.Manager.Show(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "key"))
	s.respond(w, st, err)
}

func (s *Server) respond(w http.ResponseWriter, st session.Status, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) broadcast(st session.Status) {
	bytes, err := json.Marshal(st)
	if err != nil {
		s.logger.Error("Status encode failed", "tour", st.Name, "err", err)
		return
	}
	s.Streams.Broadcast(st.Name, string(bytes))
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTourNotFound), errors.Is(err, domain.ErrStepNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAnotherTourActive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("Request failed", "err", err)
	} else {
		s.logger.Debug("Request rejected", "status", code, "err", err)
	}
	s.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

// SubscribeEvents handles GET /tours/{name}/events (SSE).
// Every mutating request on the tour pushes its new status.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	name := chi.URLParam(r, "name")
	if _, err := s.Manager.Get(name); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(name)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "tour", name)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: status\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
