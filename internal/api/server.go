// Package api provides the HTTP shell over the scoring core. The core
// itself is network-free; this server is one presentation layer and binds
// loopback by default.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/johnnie2785/comedogenic-tester/internal/catalog"
	"github.com/johnnie2785/comedogenic-tester/internal/domain"
	"github.com/johnnie2785/comedogenic-tester/internal/modifier"
	"github.com/johnnie2785/comedogenic-tester/internal/scorer"
)

// Server represents the HTTP API server.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	config  domain.ServerConfig
}

// NewServer creates a new API server.
func NewServer(cfg domain.ServerConfig, catalogs *catalog.Manager, sc *scorer.Scorer, store domain.CatalogStore, cache domain.Cache, engine *modifier.Engine, version string) *Server {
	handler := NewHandler(catalogs, sc, store, cache, engine, version)
	router := chi.NewRouter()

	// Global middleware stack
	router.Use(CORSMiddleware)         // CORS for browser clients
	router.Use(RecoverMiddleware)      // Recover from panics
	router.Use(TracingMiddleware)      // OpenTelemetry tracing
	router.Use(LoggingMiddleware)      // Request logging
	router.Use(middleware.RealIP)      // Extract real IP
	router.Use(middleware.Compress(5)) // Gzip compression

	// Health endpoints
	router.Get("/health", handler.Health)
	router.Get("/ready", handler.Ready)

	// Analysis
	router.Post("/analyze", handler.Analyze)

	// Catalog
	router.Get("/catalog", handler.GetCatalog)
	router.Get("/catalog/resolve", handler.ResolveIngredient)
	router.Post("/catalog/reload", handler.ReloadCatalog)

	// Custom modifier rules
	router.Get("/modifiers", handler.ListModifiers)
	router.Get("/modifiers/{id}", handler.GetModifier)
	router.Post("/modifiers", handler.CreateModifier)
	router.Post("/modifiers/reload", handler.ReloadModifiers)

	return &Server{
		router:  router,
		handler: handler,
		config:  cfg,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the Chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Handler returns the handler for testing.
func (s *Server) Handler() *Handler {
	return s.handler
}
