// Package api provides the HTTP API server for chatvault.
package api

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wesm/chatvault/internal/config"
	"github.com/wesm/chatvault/internal/query"
	"github.com/wesm/chatvault/internal/store"
)

// ArchiveStats is an alias for store.Stats — single source of truth.
type ArchiveStats = store.Stats

// StatsProvider defines the store operations the API needs.
type StatsProvider interface {
	GetStats() (*ArchiveStats, error)
}

// Server represents the HTTP API server.
type Server struct {
	cfg    *config.Config
	engine query.Engine
	stats  StatsProvider
	logger *slog.Logger
	router chi.Router
	server *http.Server
}

// NewServer creates a new API server over the given query engine.
func NewServer(cfg *config.Config, engine query.Engine, stats StatsProvider, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		stats:  stats,
		logger: logger,
	}
	s.router = s.setupRouter()
	return s
}

// setupRouter configures the chi router with all routes and middleware.
func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(s.loggerMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	// Health check (no auth required)
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/search", s.handleSearch)
		r.Get("/stats", s.handleStats)
	})

	return r
}

// Start begins serving HTTP requests. Blocks until the context is
// cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(s.cfg.Server.APIPort))
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	}
}

// Router exposes the configured router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// authMiddleware enforces the configured API key via the X-API-Key
// header. When no key is configured, auth is disabled (local use).
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Server.APIKey != "" {
			key := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.Server.APIKey)) != 1 {
				writeError(w, http.StatusUnauthorized, "invalid or missing API key")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// loggerMiddleware logs each request with method, path, and duration.
func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
