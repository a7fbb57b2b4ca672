// Package server hosts the launch dashboard over HTTP: the page, the layout
// and dependency JSON, the callback endpoint, direct figure endpoints and
// server-rendered chart images.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"launchdash/internal/dashboard"
	"launchdash/internal/logging"
	"launchdash/internal/render"
)

// ShutdownTimeout bounds graceful shutdown after the context is cancelled.
var ShutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	Bind     string
	Port     int
	Compress bool
	Title    string
	Chart    render.Size
	Logger   *slog.Logger
}

// Server serves one Dashboard.
type Server struct {
	cfg     Config
	dash    *dashboard.Dashboard
	log     *slog.Logger
	metrics *metrics
	handler http.Handler
}

// New builds the routes for d.
func New(d *dashboard.Dashboard, cfg Config) *Server {
	if cfg.Bind == "" {
		cfg.Bind = "127.0.0.1"
	}
	if cfg.Title == "" {
		cfg.Title = dashboard.DefaultTitle
	}
	log := cfg.Logger
	if log == nil {
		log = logging.New("server")
	}
	s := &Server{
		cfg:     cfg,
		dash:    d,
		log:     log,
		metrics: newMetrics(prometheus.NewRegistry()),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(staticFS())))
	mux.HandleFunc("GET /api/layout", s.handleLayout)
	mux.HandleFunc("GET /api/dependencies", s.handleDependencies)
	mux.HandleFunc("POST /api/callback", s.handleCallback)
	mux.HandleFunc("GET /api/figures/{kind}", s.handleFigure)
	mux.HandleFunc("GET /charts/{file}", s.handleChart)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	var h http.Handler = mux
	if s.cfg.Compress {
		h = compress(h)
	}
	return s.observe(h)
}

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.cfg.Bind, s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// StartOnAvailablePort binds an ephemeral port and serves in the background
// until ctx is cancelled. The returned channel yields the serve error once
// shutdown completes.
func (s *Server) StartOnAvailablePort(ctx context.Context) (string, <-chan error, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(s.cfg.Bind, "0"))
	if err != nil {
		return "", nil, fmt.Errorf("listen: %w", err)
	}
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()
	return ln.Addr().String(), done, nil
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.log.Info("stopped")
		return nil
	})
	return g.Wait()
}
