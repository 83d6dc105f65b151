// Package server exposes the timeline pipeline over HTTP.
//
// Routes:
//
//	GET  /health               liveness and build version
//	GET  /api/config           current configuration
//	PUT  /api/config           replace the configuration (overlaid on defaults)
//	POST /api/preview          render events as PNG
//	POST /api/export/{format}  render events as png, svg, json, csv or ics
//	POST /api/import/csv       decode a CSV upload into event records
//
// Render requests carry {"events": [...], "config": {...}}; the config is
// optional and defaults to the server's current configuration. Rows with
// an empty name or date are dropped before building, so half-edited
// tables still preview.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/pipeline"
)

const (
	// maxBodyBytes bounds request bodies, uploads included.
	maxBodyBytes = 5 << 20

	// previewDPI keeps previews small; exports use the configured dpi.
	previewDPI = 100.0

	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API. It is safe for concurrent use; each request
// runs its own pipeline.
type Server struct {
	runner     *pipeline.Runner
	logger     *log.Logger
	configPath string

	mu  sync.RWMutex
	cfg config.Config

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. The default discards output.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithConfigPath persists configuration updates to path.
func WithConfigPath(path string) Option { return func(s *Server) { s.configPath = path } }

// New creates a server rendering through runner with cfg as the initial
// configuration.
func New(runner *pipeline.Runner, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleGetConfig)
		r.Put("/config", s.handlePutConfig)
		r.Post("/preview", s.handlePreview)
		r.Post("/export/{format}", s.handleExport)
		r.Post("/import/csv", s.handleImportCSV)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the current configuration.
func (s *Server) Config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Server) setConfig(cfg config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.configPath != "" {
		if err := cfg.Save(s.configPath); err != nil {
			return err
		}
	}
	s.cfg = cfg
	return nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
