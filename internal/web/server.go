package web

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/contributorsambhav/portfolio/internal/catalog"
	"github.com/contributorsambhav/portfolio/internal/config"
	"github.com/contributorsambhav/portfolio/internal/metrics"
	"github.com/contributorsambhav/portfolio/internal/ops"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Deps holds everything the web server needs.
type Deps struct {
	Catalog *catalog.Catalog
	DB      *sql.DB
	Source  ops.Source // nil disables fetching; stored snapshots are still served
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Collector
	Version string
}

// NewServer creates and configures the HTTP server for the portfolio site.
func NewServer(d Deps) (*http.Server, error) {
	handler, err := NewHandler(d)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", d.Config.Bind, d.Config.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// NewHandler builds the routed, middleware-wrapped handler.
func NewHandler(d Deps) (http.Handler, error) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("template sub-FS: %w", err)
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static sub-FS: %w", err)
	}

	h := &Handlers{
		cat:      d.Catalog,
		db:       d.DB,
		src:      d.Source,
		cfg:      d.Config,
		logger:   d.Logger,
		renderer: NewRenderer(templateSub, d.Version, d.Logger),
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", h.HandleHome)
	mux.HandleFunc("GET /projects", h.HandleProjects)
	mux.HandleFunc("GET /projects/{id}", h.HandleProject)
	mux.HandleFunc("GET /activity", h.HandleActivity)
	mux.HandleFunc("GET /web3", h.HandleWeb3)
	mux.HandleFunc("GET /work", h.HandleWork)

	// JSON API, open to the configured origins
	api := http.NewServeMux()
	api.HandleFunc("GET /api/profile", h.HandleAPIProfile)
	api.HandleFunc("GET /api/projects", h.HandleAPIProjects)
	api.HandleFunc("GET /api/projects/{id}", h.HandleAPIProject)
	api.HandleFunc("GET /api/activity", h.HandleAPIActivity)
	api.HandleFunc("GET /api/techs", h.HandleAPITechs)
	api.HandleFunc("GET /api/web3", h.HandleAPIWeb3)
	api.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		renderJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{"code": "NOT_FOUND", "message": "no such endpoint", "status": http.StatusNotFound},
		})
	})
	mux.Handle("/api/", cors.Handler(cors.Options{
		AllowedOrigins: d.Config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(api))

	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	handler := instrument(mux, d.Logger, d.Metrics)
	handler = middleware.Recoverer(handler)
	handler = middleware.RequestID(handler)
	handler = securityHeaders(handler)
	return handler, nil
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' https: data:")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// instrument logs each request and records HTTP metrics. It must wrap the
// ServeMux directly so the matched pattern is visible after serving.
func instrument(next http.Handler, logger *zap.Logger, m *metrics.Collector) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)

		m.ObserveHTTP(r.Method, route, status, elapsed)
		logger.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", elapsed))
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, logger *zap.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("portfolio running", zap.String("url", "http://"+srv.Addr))

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		logger.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
