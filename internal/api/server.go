// Package api provides the HTTP server for Daybreak. It exposes the
// check-in/profile write surface and JSON endpoints for every derived
// progress value, so the UI collaborator can stay a thin renderer.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daybreak-app/daybreak/internal/app/progress"
	"github.com/daybreak-app/daybreak/internal/app/rollover"
	"github.com/daybreak-app/daybreak/internal/health"
	"github.com/daybreak-app/daybreak/internal/infra/sqlite"
)

// Server is the Daybreak HTTP API server.
type Server struct {
	store          *sqlite.DB
	engine         *progress.Engine
	sessions       *rollover.SessionManager
	health         *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(store *sqlite.DB, engine *progress.Engine, sessions *rollover.SessionManager, checker *health.Checker) *Server {
	return &Server{store: store, engine: engine, sessions: sessions, health: checker}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		statuses := s.health.Statuses()
		if len(statuses) == 0 {
			// Request arrived before the checker's first tick.
			s.health.Check(r.Context())
			statuses = s.health.Statuses()
		}

		status, state := http.StatusOK, "ok"
		if !s.health.IsHealthy() {
			status, state = http.StatusServiceUnavailable, "degraded"
		}
		writeJSON(w, status, map[string]interface{}{
			"status": state,
			"checks": statuses,
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "Daybreak is running",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/checkins", s.handleSubmitCheckIn)
		r.Get("/checkins", s.handleListCheckIns)

		r.Put("/profile", s.handleUpsertProfile)
		r.Get("/profile", s.handleGetProfile)

		r.Get("/summary", s.handleSummary)
		r.Get("/streaks", s.handleStreaks)
		r.Get("/compliance", s.handleCompliance)
		r.Get("/milestones", s.handleMilestones)
		r.Get("/pattern", s.handlePattern)
		r.Get("/savings", s.handleSavings)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
