// ABOUTME: HTTP JSON API exposing the tracker operations to a local UI
// ABOUTME: chi router with CORS, request ids, panic recovery, and zap request logs
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/harper/habits/internal/models"
	"github.com/harper/habits/internal/storage"
	"github.com/harper/habits/internal/tracker"
	"go.uber.org/zap"
)

// Server holds the handlers for the tracker API
type Server struct {
	svc    *tracker.Service
	logger *zap.Logger
}

// NewServer creates a Server over a tracker service
func NewServer(svc *tracker.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, logger: logger}
}

// Router builds the API routes. allowedOrigins is the UI origin list for CORS.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(StructuredLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.health)

	r.Route("/api", func(api chi.Router) {
		api.Route("/users", func(u chi.Router) {
			u.Get("/", s.getUsers)
			u.Post("/", s.createUser)
			u.Route("/{userID}", func(one chi.Router) {
				one.Get("/", s.getUser)
				one.Patch("/", s.updateUser)
				one.Delete("/", s.deleteUser)
				one.Get("/goals", s.getGoals)
				one.Get("/logs", s.getDailyLogs)
				one.Get("/logs/{goalID}/{date}", s.getLogForDate)
				one.Get("/weights", s.getWeightEntries)
				one.Get("/days/{date}", s.getDayStatus)
				one.Get("/months/{month}", s.getMonthSummary)
			})
		})

		api.Route("/goals", func(g chi.Router) {
			g.Post("/", s.createGoal)
			g.Get("/{goalID}", s.getGoal)
			g.Patch("/{goalID}", s.updateGoal)
			g.Delete("/{goalID}", s.deleteGoal)
			g.Get("/{goalID}/streak", s.getStreak)
		})

		api.Post("/logs/toggle", s.toggleDailyLog)
		api.Patch("/logs/{logID}", s.updateDailyLog)

		api.Post("/weights", s.addWeightEntry)
		api.Delete("/weights/{weightID}", s.deleteWeightEntry)

		api.Get("/settings", s.getSettings)
		api.Patch("/settings", s.updateSettings)

		api.Get("/export", s.export)
	})

	return r
}

// writeJSON encodes v with status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps tracker errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrReferentialViolation):
		return http.StatusConflict
	case errors.Is(err, storage.ErrNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body into v, reporting malformed bodies as invalid input
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.GetSettings(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
