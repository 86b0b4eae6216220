// Package server exposes the ops endpoints used in schedule mode: a health
// check with run statistics and the Prometheus metrics handler. The mapping
// tables themselves are never served; consumers read the JSON files.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ncmbianchi/omim-converter/config"
	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the ops HTTP server.
type Server struct {
	httpServer *http.Server
	store      interfaces.RunStore
}

// New creates the ops server with its routes configured.
func New(cfg *config.Config, store interfaces.RunStore) *Server {
	s := &Server{store: store}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         cfg.Address + ":" + cfg.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start runs the server in a background goroutine.
func (s *Server) Start() {
	go func() {
		logging.Info("Ops server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ops server failed", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleHealth reports the state of the last pipeline run.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.store.GetRunStats()
	lastRun := s.store.GetLastRun()

	status := "healthy"
	if lastRun.IsZero() {
		status = "starting"
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"status":          status,
		"updating":        s.store.IsRunning(),
		"last_run":        lastRun,
		"id_counts":       stats.IDCounts,
		"forward_entries": stats.ForwardEntries,
		"reverse_entries": stats.ReverseEntries,
		"duplicate_omim":  stats.DuplicateOmimIDs,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if _, err := w.Write(data); err != nil {
		logging.Warn("Failed to write response", "error", err)
	}
}
