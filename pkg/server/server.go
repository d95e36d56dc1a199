// Package server exposes workflow parsing over HTTP.
//
// The API accepts raw .yxmd documents, parses them, archives the result
// in a [store.Store], and serves parsed records back by ID. Responses
// are cached by content hash so repeated uploads of the same file are
// cheap.
//
// # Endpoints
//
//	GET  /healthz               liveness probe
//	POST /v1/workflows          upload a workflow document
//	GET  /v1/workflows/{id}     fetch an archived workflow
//	GET  /v1/workflows/{id}/graph?format=json|dot  tool graph
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/flowlens/flowlens/pkg/cache"
	"github.com/flowlens/flowlens/pkg/store"
)

// Options configures a Server.
type Options struct {
	// Cache stores rendered responses keyed by content hash.
	// Defaults to a null cache.
	Cache cache.Cache

	// Store archives parsed workflows. Defaults to an in-memory store.
	Store store.Store

	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger

	// CacheTTL bounds the lifetime of cached responses. Zero means no
	// expiration.
	CacheTTL time.Duration
}

// Server is the flowlens HTTP API.
type Server struct {
	router   chi.Router
	cache    cache.Cache
	store    store.Store
	logger   *log.Logger
	cacheTTL time.Duration
}

// New creates a Server with the given options.
func New(opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Server{
		router:   chi.NewRouter(),
		cache:    opts.Cache,
		store:    opts.Store,
		logger:   opts.Logger,
		cacheTTL: opts.CacheTTL,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestID)
	s.router.Use(s.logRequests)
	s.router.Use(recoverPanics(s.logger))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/workflows", s.handleUpload)
		r.Get("/workflows/{id}", s.handleGet)
		r.Get("/workflows/{id}/graph", s.handleGraph)
	})
}

// Handler returns the root HTTP handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves the API on addr until ctx is canceled, then
// shuts down gracefully with a 5 second drain window.
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
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
