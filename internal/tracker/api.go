package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"btc-tracker-go/internal/models"
	"go.uber.org/zap"
)

// statusSnapshotLimit bounds the history returned by /status.
const statusSnapshotLimit = 10

// APIServer exposes liveness and status endpoints for the engine.
type APIServer struct {
	server *http.Server
	engine *Engine
	logger *zap.Logger
}

// NewAPIServer creates a new APIServer listening on the given port.
func NewAPIServer(engine *Engine, port int, logger *zap.Logger) *APIServer {
	s := &APIServer{
		engine: engine,
		logger: logger.Named("api-server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/status", s.statusHandler)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	return s
}

// Start runs the HTTP server in a new goroutine.
func (s *APIServer) Start() {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Error("API server failed", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the server.
func (s *APIServer) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := struct {
		StartTime       string            `json:"start_time"`
		Uptime          string            `json:"uptime"`
		LastSnapshot    *models.Snapshot  `json:"last_snapshot,omitempty"`
		RecentSnapshots []models.Snapshot `json:"recent_snapshots,omitempty"`
	}{
		StartTime: s.engine.StartTime.Format(time.RFC3339),
		Uptime:    time.Since(s.engine.StartTime).String(),
	}

	last, err := s.engine.repo.LatestSnapshot()
	if err != nil {
		s.logger.Error("Failed to read latest snapshot for status", zap.Error(err))
	} else {
		status.LastSnapshot = last
	}

	recent, err := s.engine.repo.RecentSnapshots(statusSnapshotLimit)
	if err != nil {
		s.logger.Error("Failed to read recent snapshots for status", zap.Error(err))
	} else {
		status.RecentSnapshots = recent
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Error("Failed to write status response", zap.Error(err))
		http.Error(w, "Failed to encode status", http.StatusInternalServerError)
	}
}

func (s *APIServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}
