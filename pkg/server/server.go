// Package server exposes interactive glitch sessions and batch renders over
// HTTP.
//
// Each session owns a scheduler; clients upload an image, send tool events
// and configuration changes, and pull frames as PNG. Batch renders go
// through the cached [pipeline.Runner].
//
// # Routes
//
//	GET    /healthz                     build info
//	GET    /presets                     built-in presets
//	POST   /render                      render an uploaded image (body) to png or gif
//	POST   /sessions                    create a session (optional JSON config body)
//	DELETE /sessions/{id}               end a session
//	POST   /sessions/{id}/image         load an image (body)
//	POST   /sessions/{id}/resize        resample the image ({"width","height"})
//	GET    /sessions/{id}/frame         advance and return the current frame as PNG
//	POST   /sessions/{id}/events        apply a tool event (JSON)
//	GET    /sessions/{id}/config        current configuration
//	PUT    /sessions/{id}/config        merge and install a configuration
//	GET    /sessions/{id}/debug         scheduler status
//	POST   /sessions/{id}/play|pause|reset
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/pipeline"
	"github.com/matzehuels/glitcher/pkg/session"
)

// Defaults for Options.
const (
	DefaultMaxUpload   = 32 << 20
	DefaultMaxSessions = 64
	shutdownTimeout    = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Store holds sessions. Nil uses a MemoryStore limited to DefaultMaxSessions.
	Store session.Store

	// Runner serves /render. Nil uses an uncached runner.
	Runner *pipeline.Runner

	// Config is the starting configuration of new sessions.
	Config engine.Config

	SessionTTL time.Duration
	MaxUpload  int64
	Logger     *log.Logger
}

// Server is the HTTP API.
type Server struct {
	store     session.Store
	runner    *pipeline.Runner
	base      engine.Config
	ttl       time.Duration
	maxUpload int64
	logger    *log.Logger
	router    chi.Router
}

// New builds a server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore(DefaultMaxSessions)
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = DefaultMaxUpload
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	s := &Server{
		store:     opts.Store,
		runner:    opts.Runner,
		base:      opts.Config,
		ttl:       opts.SessionTTL,
		maxUpload: opts.MaxUpload,
		logger:    opts.Logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/presets", s.handlePresets)
	r.Post("/render", s.handleRender)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)
			r.Post("/image", s.handleLoadImage)
			r.Post("/resize", s.handleResize)
			r.Get("/frame", s.handleFrame)
			r.Post("/events", s.handleEvent)
			r.Get("/config", s.handleGetConfig)
			r.Put("/config", s.handlePutConfig)
			r.Get("/debug", s.handleDebug)
			r.Post("/play", s.handlePlayback(playbackPlay))
			r.Post("/pause", s.handlePlayback(playbackPause))
			r.Post("/reset", s.handlePlayback(playbackReset))
		})
	})
	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are cleaned up in the background.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go session.RunCleanup(ctx, s.store, session.DefaultCleanupInterval)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
