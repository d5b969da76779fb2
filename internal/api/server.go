// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sartorproj/godemand/internal/config"
	"github.com/sartorproj/godemand/pipeline"
)

// Server represents the HTTP API server.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	config  config.ServerConfig
}

// NewServer creates a new API server around runner.
func NewServer(cfg config.ServerConfig, runner *pipeline.Runner) *Server {
	handler := NewHandler(runner)
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(RecoverMiddleware)
	router.Use(LoggingMiddleware)

	router.Get("/health", handler.Health)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Post("/segment", handler.Segment)
	router.Post("/cleanse", handler.Cleanse)
	router.Post("/analyze", handler.Analyze)

	return &Server{
		router:  router,
		handler: handler,
		config:  cfg,
	}
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
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

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
