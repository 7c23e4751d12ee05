// Package api provides the HTTP server for LifeForge.
// All routes are JSON; the browser front-end talks to /api/* with a
// session cookie.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lifeforge/lifeforge/internal/app/coach"
	"github.com/lifeforge/lifeforge/internal/app/gamify"
	"github.com/lifeforge/lifeforge/internal/app/ledger"
	"github.com/lifeforge/lifeforge/internal/domain"
	"github.com/lifeforge/lifeforge/internal/health"
	"github.com/lifeforge/lifeforge/internal/infra/metrics"
	"github.com/lifeforge/lifeforge/internal/infra/sqlite"
)

// Version is reported by /api/version. Overridden at build time.
var Version = "0.1.0"

// Server is the LifeForge HTTP API server.
type Server struct {
	db           *sqlite.DB
	ledger       *ledger.Service
	achievements *gamify.AchievementService

	coach           *coach.Coach // nil: coach route returns 503
	checker         *health.Checker
	metricsEnabled  bool
	habitCategories map[string]bool

	// now is injectable so tests can pin the streak reference date.
	now func() time.Time
}

// NewServer creates an API server over the given database.
func NewServer(db *sqlite.DB) *Server {
	cats := make(map[string]bool)
	for _, c := range domain.DefaultHabitCategories {
		cats[c] = true
	}
	return &Server{
		db:              db,
		ledger:          ledger.NewService(db),
		achievements:    gamify.NewAchievementService(db),
		habitCategories: cats,
		now:             time.Now,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetCoach wires the AI coach backend.
func (s *Server) SetCoach(c *coach.Coach) { s.coach = c }

// SetHealthChecker wires the background health checker into /health.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// SetHabitCategories replaces the allowed habit category set.
func (s *Server) SetHabitCategories(categories []string) {
	m := make(map[string]bool, len(categories))
	for _, c := range categories {
		m[c] = true
	}
	s.habitCategories = m
}

// SetClock overrides the wall clock. Tests use this to pin "today".
func (s *Server) SetClock(now func() time.Time) { s.now = now }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	r.Use(requestMetrics)

	r.Get("/health", s.handleHealth)

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})

	r.Post("/api/auth/login", s.handleLogin)

	// Authenticated surface
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Post("/api/auth/logout", s.handleLogout)
		r.Get("/api/me", s.handleMe)

		r.Route("/api/daily-logs", func(r chi.Router) {
			r.Get("/", s.handleGetDailyLogs)
			r.Post("/", s.handleUpsertDailyLog)
		})

		r.Route("/api/habits", func(r chi.Router) {
			r.Get("/", s.handleListHabits)
			r.Post("/", s.handleUpsertHabit)
			r.Delete("/{id}", s.handleDeleteHabit)
		})

		r.Route("/api/learning", func(r chi.Router) {
			r.Get("/", s.handleListLearning)
			r.Post("/", s.handleUpsertLearning)
			r.Put("/", s.handleUpsertLearning)
			r.Delete("/{id}", s.handleDeleteLearning)
		})

		r.Route("/api/problems", func(r chi.Router) {
			r.Get("/", s.handleListProblems)
			r.Post("/", s.handleUpsertProblem)
			r.Put("/", s.handleUpsertProblem)
		})

		r.Route("/api/practice", func(r chi.Router) {
			r.Get("/", s.handleListPractice)
			r.Post("/", s.handleAddPractice)
		})

		r.Route("/api/notes", func(r chi.Router) {
			r.Get("/", s.handleListNotes)
			r.Post("/", s.handleAddNote)
		})

		r.Route("/api/stats", func(r chi.Router) {
			r.Get("/streaks", s.handleStreaks)
			r.Get("/summary", s.handleSummary)
		})

		r.Route("/api/money", func(r chi.Router) {
			r.Get("/categories", s.handleListCategories)
			r.Post("/categories", s.handleAddCategory)
			r.Delete("/categories/{id}", s.handleDeleteCategory)

			r.Get("/transactions", s.handleListTransactions)
			r.Post("/transactions", s.handleAddTransaction)

			r.Get("/splits", s.handleListSplits)
			r.Post("/splits", s.handleAddSplit)
			r.Post("/splits/{id}/settle", s.handleSettleUp)
			r.Post("/splits/{id}/paid/{userID}", s.handleMarkPaid)
			r.Get("/balances", s.handleBalances)
			r.Get("/users", s.handleListUsers)
		})

		r.Route("/api/coach", func(r chi.Router) {
			r.Get("/modes", s.handleCoachModes)
			r.Post("/chat", s.handleCoachChat)
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// handleHealth reports liveness plus the latest background check
// results when a checker is wired.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"status": "ok"}
	if err := s.db.Ping(); err != nil {
		resp["status"] = "degraded"
		resp["error"] = err.Error()
	}
	if s.checker != nil {
		resp["checks"] = s.checker.Statuses()
	}
	writeJSON(w, http.StatusOK, resp)
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
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestMetrics counts requests by route pattern and status.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}
