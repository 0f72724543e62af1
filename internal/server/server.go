// Package server implements the development server that exposes rendered API
// metadata as JSON. The served Site can be swapped atomically, which is how
// the metadata watcher publishes reloads.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	prom "github.com/prometheus/client_golang/prometheus"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
	"git.home.luguber.info/inful/apidocs/internal/metrics"
	"git.home.luguber.info/inful/apidocs/internal/server/middleware"
	"git.home.luguber.info/inful/apidocs/internal/site"
)

// Options configures a Server.
type Options struct {
	Addr string
	// Registry, when set, is exposed at /metrics.
	Registry *prom.Registry
	Logger   *slog.Logger
}

// Server serves the metadata API of the current Site.
type Server struct {
	opts    Options
	logger  *slog.Logger
	adapter *foundationerrors.HTTPErrorAdapter
	current atomic.Pointer[site.Site]
	router  chi.Router

	mu  sync.Mutex
	srv *http.Server
}

// New creates a server for s.
func New(s *site.Site, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		opts:    opts,
		logger:  logger,
		adapter: foundationerrors.NewHTTPErrorAdapter(logger),
	}
	srv.current.Store(s)
	srv.router = srv.routes()
	return srv
}

// Site returns the Site currently being served.
func (s *Server) Site() *site.Site { return s.current.Load() }

// SetSite replaces the served Site. In-flight requests finish on the old one.
func (s *Server) SetSite(next *site.Site) { s.current.Store(next) }

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Chain(s.logger, s.adapter))
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/links", s.handleLinks)
	r.Get("/api/metadata/{type}", s.handleMetadata)
	r.Get("/api/metadata/{version}/{type}", s.handleMetadata)
	if s.opts.Registry != nil {
		r.Handle("/metrics", metrics.HTTPHandler(s.opts.Registry))
	}
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.adapter.WriteError(w, foundationerrors.NotFoundError("route not found").
			WithContext("path", req.URL.Path).
			Build())
	})
	return r
}

// Start listens on the configured address and serves until Stop is called
// or ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return foundationerrors.ConfigError("failed to listen").
			WithCause(err).
			WithContext("addr", s.opts.Addr).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until Stop is called or ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{Handler: s.router, ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 120 * time.Second}
	s.mu.Lock()
	s.srv = httpSrv
	s.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Stop(shutdownCtx)
	})
	defer stop()

	s.logger.Info("Development server listening", logfields.Addr(ln.Addr().String()))
	if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return foundationerrors.InternalError("development server failed").WithCause(err).Build()
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	httpSrv := s.srv
	s.mu.Unlock()
	if httpSrv == nil {
		return nil
	}
	s.logger.Info("Stopping development server")
	return httpSrv.Shutdown(ctx)
}
