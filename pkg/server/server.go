// Package server exposes the moderator dashboard over HTTP: server-rendered
// pages for moderators, a JSON API under /api/v1, health probes and metrics.
package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"github.com/minely/moderator/pkg/audit"
	"github.com/minely/moderator/pkg/cache"
	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/metrics"
)

// Headers carrying the acting moderator.
const (
	PrincipalHeader = "X-User-Principal"
	RoleHeader      = "X-User-Role"
	defaultActor    = "moderator"
)

// Server serves one dashboard board.
type Server struct {
	board       *dashboard.Board
	logger      *slog.Logger
	cache       *cache.Manager
	metrics     *metrics.Metrics
	history     *audit.Store
	db          *gorm.DB
	corsOrigins []string
	pages       *template.Template
	startedAt   time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithCache enables response caching for the JSON API.
func WithCache(m *cache.Manager) Option {
	return func(s *Server) { s.cache = m }
}

// WithMetrics instruments requests and serves /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithHistory serves the moderation history under /api/v1/history.
func WithHistory(store *audit.Store) Option {
	return func(s *Server) { s.history = store }
}

// WithDatabase makes /readyz check database connectivity.
func WithDatabase(db *gorm.DB) Option {
	return func(s *Server) { s.db = db }
}

// WithCORSOrigins sets the origins allowed to call /api.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// New creates a server for board.
func New(board *dashboard.Board, opts ...Option) (*Server, error) {
	s := &Server{
		board:       board,
		logger:      slog.Default(),
		corsOrigins: []string{"*"},
		startedAt:   time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	s.pages = pages
	return s, nil
}

// Router builds the HTTP handler tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/healthz", s.healthHandler)
	r.Get("/livez", s.healthHandler)
	r.Get("/readyz", s.readyHandler)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.mountPages(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", PrincipalHeader, RoleHeader},
			ExposedHeaders:   []string{cache.Header},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		s.mountAPI(r)
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "alive",
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// readyHandler reports whether the history database is reachable.
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := map[string]string{"status": "up"}
	ready := true
	if s.db == nil {
		dbStatus["status"] = "not_configured"
	} else if sqlDB, err := s.db.DB(); err != nil {
		dbStatus["status"] = "down"
		dbStatus["error"] = err.Error()
		ready = false
	} else if err := sqlDB.PingContext(r.Context()); err != nil {
		dbStatus["status"] = "down"
		dbStatus["error"] = err.Error()
		ready = false
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"status": status,
		"checks": map[string]any{"database": dbStatus},
	})
}

// requestLogger logs one line per request with its status and latency.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"requestId", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// actorFrom prefers X-User-Principal over X-User-Role and falls back to
// "moderator".
func actorFrom(r *http.Request) string {
	if principal := r.Header.Get(PrincipalHeader); principal != "" {
		return principal
	}
	if role := r.Header.Get(RoleHeader); role != "" {
		return role
	}
	return defaultActor
}

// CacheInvalidator drops a section's cached responses after a status
// change that altered a record.
func CacheInvalidator(m *cache.Manager) dashboard.TransitionObserver {
	return dashboard.ObserverFunc(func(_ context.Context, ev dashboard.TransitionEvent) {
		if ev.Outcome == dashboard.OutcomeSuccess && ev.Changed {
			m.InvalidateSection(ev.Section)
		}
	})
}
