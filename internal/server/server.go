// Package server serves published snapshots over HTTP.
//
// Routes:
//
//	GET /health           liveness and subscriber count
//	GET /snapshot         latest snapshot as JSON
//	GET /snapshot/render  latest snapshot rendered (?format=&style=&width=&color=)
//	GET /events           server-sent events, one "snapshot" event per snapshot
//	GET /metrics          Prometheus metrics, when a handler is configured
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/muesli/termenv"

	"github.com/matzehuels/autotype/pkg/buildinfo"
	apperr "github.com/matzehuels/autotype/pkg/errors"
	recordio "github.com/matzehuels/autotype/pkg/io"
	"github.com/matzehuels/autotype/pkg/pipeline"
	"github.com/matzehuels/autotype/pkg/publish"
)

// DefaultKeepAlive is the interval between keep-alive comments on idle
// event streams.
const DefaultKeepAlive = 15 * time.Second

// Server serves the snapshots of a [publish.Hub].
type Server struct {
	hub       *publish.Hub
	runner    *pipeline.Runner
	metrics   http.Handler
	logger    *log.Logger
	keepAlive time.Duration
	router    chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithRunner sets the runner used by /snapshot/render.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) { s.runner = r }
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKeepAlive sets the keep-alive interval of event streams.
func WithKeepAlive(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.keepAlive = d
		}
	}
}

// New creates a server reading from hub.
func New(hub *publish.Hub, opts ...Option) *Server {
	s := &Server{
		hub:       hub,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		keepAlive: DefaultKeepAlive,
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
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.health)
	r.Get("/snapshot", s.snapshot)
	r.Get("/snapshot/render", s.render)
	r.Get("/events", s.events)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled. Open event streams
// are closed when ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return apperr.Wrap(apperr.ErrCodeNetwork, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Debug("http server stopped")
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"version":     buildinfo.Version,
		"subscribers": s.hub.Subscribers(),
		"snapshot":    s.hub.Latest() != nil,
	})
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	latest := s.hub.Latest()
	if latest == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot published yet")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(latest)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	latest := s.hub.Latest()
	if latest == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot published yet")
		return
	}

	q := r.URL.Query()
	profile := termenv.Ascii
	if color, _ := strconv.ParseBool(q.Get("color")); color {
		profile = termenv.TrueColor
	}
	opts := pipeline.Options{
		Format:  q.Get("format"),
		Style:   q.Get("style"),
		Profile: &profile,
	}
	if opts.Style == "" {
		opts.Style = "notty"
	}
	if width := q.Get("width"); width != "" {
		n, err := strconv.Atoi(width)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "width must be a positive integer")
			return
		}
		opts.Width = n
	}

	rec, err := recordio.ReadRecord(bytes.NewReader(latest))
	if err != nil {
		s.logger.Error("decode latest snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "decode snapshot")
		return
	}
	result, err := s.runner.Render(r.Context(), rec, opts)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("render snapshot", "error", err)
			writeError(w, status, "render snapshot")
			return
		}
		writeError(w, status, apperr.UserMessage(err))
		return
	}

	switch opts.Format {
	case pipeline.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case pipeline.FormatMarkdown:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("X-Cache", cacheHeader(result.CacheHit))
	w.Write(result.Data)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
