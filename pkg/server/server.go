// Package server provides the HTTP preview server.
//
// The server exposes the generation pipeline over a small JSON/artifact
// API so editors and scripts can fetch grid sheets without shelling out
// to the CLI:
//
//	GET  /healthz                 liveness and version
//	GET  /grid.{format}           a rendered sheet (svg, png, pdf, json, txt)
//	GET  /documents               list saved documents
//	POST /documents               create a document
//	GET  /documents/{id}          fetch one document
//	DELETE /documents/{id}        remove a document
//
// Grid settings arrive as query parameters named like the pipeline
// options (format, orientation, margin_method, grid_cols, ...). Errors
// map to HTTP statuses by code: invalid input is 400 with the
// user-facing message, missing documents are 404, everything else 500.
//
// The server holds no mutable state beyond its store and cache handles;
// a Runner is safe for concurrent requests.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gridwerk/gridwerk/pkg/buildinfo"
	"github.com/gridwerk/gridwerk/pkg/document"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Config carries the server's collaborators. Store may be nil; document
// reads then answer 404 or an empty list, and writes are rejected.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Store  document.Store
	Logger *log.Logger
}

// Server is the HTTP preview server.
type Server struct {
	addr   string
	runner *pipeline.Runner
	store  document.Store
	logger *log.Logger
}

// New creates a server. A nil runner gets a cache-less default; a nil
// logger falls back to the package default.
func New(cfg Config) *Server {
	runner := cfg.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:   cfg.Addr,
		runner: runner,
		store:  cfg.Store,
		logger: logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/grid.{format:[a-z]+}", s.handleGrid)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.handleListDocuments)
		r.Post("/", s.handleCreateDocument)
		r.Get("/{id}", s.handleGetDocument)
		r.Delete("/{id}", s.handleDeleteDocument)
	})

	return r
}

// Start serves until the context is canceled, then drains in-flight
// requests before returning.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
