// Package server hosts the registration form page: one in-memory form per
// visitor, rendered as HTML and mirrored by a small JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/metrics"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

const shutdownTimeout = 5 * time.Second

var (
	// ErrPreparedRequired is returned by New without a prepared form.
	ErrPreparedRequired = errors.New("server: prepared form is required")
	// ErrRegistryRequired is returned by New without a renderer registry.
	ErrRegistryRequired = errors.New("server: renderer registry is required")
	// ErrSubmitterRequired is returned by New without a submitter.
	ErrSubmitterRequired = errors.New("server: submitter is required")
)

// Server serves the form page and its JSON API.
type Server struct {
	prepared      *orchestrator.Prepared
	registry      *render.Registry
	submitter     form.Submitter
	rendererName  string
	logger        *slog.Logger
	sessionTTL    time.Duration
	secureCookies bool
	metrics       *metrics.Recorder
	gatherer      prometheus.Gatherer

	sessions *sessionStore
	router   chi.Router
}

// New wires the routes. prepared supplies the rules and the model, registry
// the page renderer and submitter the registration transport.
func New(prepared *orchestrator.Prepared, registry *render.Registry, submitter form.Submitter, opts ...Option) (*Server, error) {
	switch {
	case prepared == nil:
		return nil, ErrPreparedRequired
	case registry == nil:
		return nil, ErrRegistryRequired
	case submitter == nil:
		return nil, ErrSubmitterRequired
	}

	s := &Server{
		prepared:   prepared,
		registry:   registry,
		submitter:  submitter,
		logger:     slog.Default(),
		sessionTTL: DefaultSessionTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if _, err := registry.Get(s.rendererName); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s.sessions = newSessionStore(s.sessionTTL, s.newForm, s.metrics.SessionOpened, s.metrics.SessionClosed)
	s.router = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving registration form", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("server stopped", "sessions", s.sessions.count())
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Post("/", s.handlePost)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/change", s.handleChange)
		r.Post("/submit", s.handleSubmit)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS()))))
	return r
}

func (s *Server) newForm(id string) *form.Form {
	opts := []form.Option{
		form.WithSchema(s.prepared.Schema),
		form.WithSubmitter(s.submitter),
		form.WithLogger(s.logger.With("session", id)),
	}
	if s.metrics != nil {
		opts = append(opts, form.WithRecorder(s.metrics))
	}
	return form.New(opts...)
}

func assetsFS() fs.FS {
	return vanilla.AssetsFS()
}
