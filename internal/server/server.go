// Package server exposes the session operations over JSON HTTP. It is a
// thin shell: decode, validate, call the service, map the error taxonomy
// onto status codes. Who the caller is and how they authenticated is the
// concern of whatever sits in front of this listener.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/toad-frogski/visits/internal/repository"
	"github.com/toad-frogski/visits/internal/service"
)

// Server wires the operation handlers onto an http.Server.
type Server struct {
	sessions   service.SessionService
	statistics service.StatisticsService
	logger     *slog.Logger
	httpServer *http.Server
}

// New builds a Server over the given services. A nil logger falls back
// to slog.Default().
func New(cfg Config, sessions service.SessionService, statistics service.StatisticsService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		sessions:   sessions,
		statistics: statistics,
		logger:     logger,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/visits/enter", s.handleEnter)
	mux.HandleFunc("PUT /api/v1/visits/exit", s.handleExit)
	mux.HandleFunc("POST /api/v1/visits/leave", s.handleLeave)
	mux.HandleFunc("GET /api/v1/visits/current", s.handleCurrent)
	mux.HandleFunc("GET /api/v1/visits/today", s.handleToday)
	mux.HandleFunc("POST /api/v1/visits/sessions/{id}/entries", s.handleInsertEntry)
	mux.HandleFunc("PUT /api/v1/visits/entries/{id}/repair", s.handleRepairEntry)
	mux.HandleFunc("GET /api/v1/visits/statistics", s.handleStatistics)
	return mux
}

// Handler returns the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// state conflicts are 409 with enough context to retry, not-found is 404,
// a busy lock is 503 (retryable), everything else is 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyOpen),
		errors.Is(err, service.ErrNoOpenEntry),
		errors.Is(err, service.ErrOverlapConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoSession),
		errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBusy):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
