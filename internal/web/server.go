package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/nao1215/calcsite/internal/breadcrumb"
	"github.com/nao1215/calcsite/internal/calculator"
	"github.com/nao1215/calcsite/internal/catalog"
	"github.com/nao1215/calcsite/internal/history"
	"github.com/nao1215/calcsite/internal/rates"
	"github.com/nao1215/calcsite/internal/seo"
	"github.com/nao1215/calcsite/internal/site"
	"github.com/nao1215/calcsite/internal/units"
)

// Server timeouts used when Options leaves them zero.
const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// RateProvider supplies exchange rates. *rates.Service satisfies it.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (float64, error)
	Table(ctx context.Context) *rates.Table
}

// Deps are the components the server is built from.
type Deps struct {
	Catalog *catalog.Catalog
	Site    seo.Site

	// Rates defaults to the built-in static table.
	Rates RateProvider

	// History defaults to an in-memory store.
	History history.Store

	Logger *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Options configures the listener.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server serves the site and its API.
type Server struct {
	catalog   *catalog.Catalog
	site      seo.Site
	resolver  *breadcrumb.Resolver
	converter *units.Converter
	engine    *calculator.Engine
	rates     RateProvider
	history   history.Store
	renderer  *site.Renderer
	logger    *slog.Logger
	now       func() time.Time
	opts      Options
}

// NewServer wires the server components together.
func NewServer(deps Deps, opts Options) (*Server, error) {
	if deps.Catalog == nil {
		return nil, errors.New("web: catalog is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rp := deps.Rates
	if rp == nil {
		rp = rates.NewService(nil, rates.WithLogger(logger))
	}
	store := deps.History
	if store == nil {
		store = history.NewMemoryStore(history.DefaultLimit)
	}

	renderer, err := site.NewRenderer(deps.Catalog, deps.Site, site.WithRendererLogger(logger))
	if err != nil {
		return nil, err
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	return &Server{
		catalog:   deps.Catalog,
		site:      deps.Site,
		resolver:  breadcrumb.NewResolver(deps.Catalog, breadcrumb.WithLogger(logger)),
		converter: units.New(logger),
		engine:    calculator.NewEngine(calculator.WithRates(rp), calculator.WithLogger(logger)),
		rates:     rp,
		history:   store,
		renderer:  renderer,
		logger:    logger,
		now:       now,
		opts:      opts,
	}, nil
}

// Handler returns the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/breadcrumb", s.handleBreadcrumb)
	mux.HandleFunc("GET /api/convert", s.handleConvert)
	mux.HandleFunc("GET /api/convert/currency", s.handleConvertCurrency)
	mux.HandleFunc("GET /api/rates", s.handleRates)
	mux.HandleFunc("GET /api/units", s.handleUnits)
	mux.HandleFunc("GET /api/units/{category}", s.handleUnitCategory)
	mux.HandleFunc("GET /api/calculators", s.handleCalculators)
	mux.HandleFunc("GET /api/calculators/{id}", s.handleCalculator)
	mux.HandleFunc("POST /api/calculators/{id}/compute", s.handleCompute)
	mux.HandleFunc("GET /api/calculators/{id}/history", s.handleHistory)
	mux.HandleFunc("DELETE /api/calculators/{id}/history", s.handleClearHistory)
	mux.HandleFunc("GET /api/blog", s.handlePosts)
	mux.HandleFunc("GET /api/blog/{slug}", s.handlePost)
	mux.HandleFunc("GET /api/", s.handleAPINotFound)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /robots.txt", s.handleRobots)
	mux.HandleFunc("GET /", s.handlePage)

	return s.recoverer(s.logRequests(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down", "timeout", s.opts.ShutdownTimeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
