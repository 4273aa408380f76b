// Package web provides the HTTP server and handlers for the Pokédex API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/pokedex/internal/config"
	"github.com/JonMunkholm/pokedex/internal/core"
	"github.com/JonMunkholm/pokedex/internal/web/middleware"
)

// Reloader is implemented by repositories that can re-read their source.
type Reloader interface {
	Reload(ctx context.Context) (core.SnapshotInfo, error)
}

// Server is the HTTP server for the Pokédex API.
type Server struct {
	repo    core.Repository
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
	limiter *middleware.RateLimiter
}

// NewServer creates a Server over repo. When repo also implements Reloader
// and admin keys are configured, POST /api/admin/reload is mounted.
func NewServer(repo core.Repository, cfg *config.Config) *Server {
	s := &Server{
		repo:   repo,
		cfg:    cfg,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(middleware.SecurityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = middleware.NewRateLimiter(s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.Burst)
		s.router.Use(s.limiter.Handler)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.NotFound(s.handleNotFound)

	// Pages
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/pokemon", s.handleListPokemon)
		r.Get("/pokemon/{id}", s.handleGetPokemon)

		r.Get("/stats/average", s.handleAverageStats)
		r.Get("/stats/types", s.handleTypeStats)
		r.Get("/stats/base", s.handleBaseStats)

		r.Get("/schema", s.handleSchema)

		if rl, ok := s.repo.(Reloader); ok && len(s.cfg.Security.AdminAPIKeys) > 0 {
			r.With(middleware.APIKeyAuth(s.cfg.Security.AdminAPIKeys)).
				Post("/admin/reload", s.handleReload(rl))
		}
	})
}

// Start listens on the configured address until Shutdown is called.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and the rate limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Close()
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
