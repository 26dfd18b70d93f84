// Package httpserver exposes the calculator over HTTP: a server-rendered HTML
// form plus a small JSON API described by an OpenAPI contract.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-formcalc/internal/openapi"
	"github.com/goliatone/go-formcalc/pkg/formula"
	"github.com/goliatone/go-formcalc/pkg/i18n"
	"github.com/goliatone/go-formcalc/pkg/locales"
	"github.com/goliatone/go-formcalc/pkg/render"
	"github.com/goliatone/go-formcalc/pkg/renderers/pdf"
	"github.com/goliatone/go-formcalc/pkg/renderers/vanilla"
	"github.com/goliatone/go-formcalc/pkg/themes"
)

// Catalog is a Translator that can report whether it carries a locale.
type Catalog interface {
	i18n.Translator
	Has(locale string) bool
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog overrides the message catalog (the embedded catalogs by default).
func WithCatalog(catalog Catalog) Option {
	return func(s *Server) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithDefaultLocale sets the locale used when a request names none.
func WithDefaultLocale(locale string) Option {
	return func(s *Server) {
		if locale = strings.TrimSpace(locale); locale != "" {
			s.defaultLocale = locale
		}
	}
}

// WithThemeSelector overrides the theme selector.
func WithThemeSelector(selector *themes.Selector) Option {
	return func(s *Server) {
		if selector != nil {
			s.selector = selector
		}
	}
}

// WithTheme sets the theme and variant pages use unless a request overrides
// the variant.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = strings.TrimSpace(name)
		s.themeVariant = strings.TrimSpace(variant)
	}
}

// WithRegistry overrides the renderer registry. It must contain "html".
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithRateLimit enables per-client rate limiting. A zero limit disables it.
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		s.rateLimit = rate.Limit(limit)
		s.rateBurst = burst
	}
}

// WithLogger overrides the request logger. A nil logger disables logging.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server wires the calculator into a gorilla/mux router.
type Server struct {
	catalog       Catalog
	engine        *formula.Engine
	registry      *render.Registry
	selector      *themes.Selector
	contract      *openapi.Contract
	defaultLocale string
	themeName     string
	themeVariant  string
	rateLimit     rate.Limit
	rateBurst     int
	logger        *log.Logger
	limiter       *IPRateLimiter
	router        *mux.Router
}

// New builds a Server with the embedded catalogs, the default theme and the
// HTML renderer unless options say otherwise.
func New(ctx context.Context, options ...Option) (*Server, error) {
	s := &Server{
		defaultLocale: locales.DefaultLocale,
		logger:        log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.catalog == nil {
		catalog, err := locales.Default()
		if err != nil {
			return nil, fmt.Errorf("httpserver: load catalogs: %w", err)
		}
		s.catalog = catalog
	}
	if s.selector == nil {
		selector, err := themes.NewSelector()
		if err != nil {
			return nil, fmt.Errorf("httpserver: theme selector: %w", err)
		}
		s.selector = selector
	}
	if _, err := s.selector.Select(s.themeName, s.themeVariant); err != nil {
		return nil, fmt.Errorf("httpserver: theme: %w", err)
	}
	if s.registry == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("httpserver: html renderer: %w", err)
		}
		report, err := pdf.New()
		if err != nil {
			return nil, fmt.Errorf("httpserver: pdf renderer: %w", err)
		}
		registry, err := render.NewRegistry(html, report)
		if err != nil {
			return nil, fmt.Errorf("httpserver: renderer registry: %w", err)
		}
		s.registry = registry
	}
	if !s.registry.Has(htmlRenderer) {
		return nil, fmt.Errorf("httpserver: renderer %q is not registered", htmlRenderer)
	}

	contract, err := openapi.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("httpserver: %w", err)
	}
	s.contract = contract

	s.engine = formula.New(
		formula.WithTranslator(s.catalog),
		formula.WithLocale(s.defaultLocale),
	)
	s.router = s.routes()
	return s, nil
}

const (
	htmlRenderer = "html"
	pdfRenderer  = "pdf"

	limiterSweepInterval = time.Minute
	limiterIdleWindow    = 3 * time.Minute
)

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	if s.logger != nil {
		router.Use(s.logMiddleware)
	}
	if s.rateLimit > 0 {
		s.limiter = NewIPRateLimiter(s.rateLimit, s.rateBurst)
		router.Use(s.limiter.LimitMiddleware)
	}

	router.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	router.HandleFunc("/", s.handlePagePost).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/formulas", s.handleFormulas).Methods(http.MethodGet)
	api.HandleFunc("/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/batch", s.handleBatch).Methods(http.MethodPost)
	api.HandleFunc("/openapi.json", s.handleContract).Methods(http.MethodGet)

	prefix := themes.AssetPrefix + "/"
	router.PathPrefix(prefix).
		Handler(http.StripPrefix(prefix, http.FileServer(http.FS(themes.AssetsFS())))).
		Methods(http.MethodGet, http.MethodHead)

	return router
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, waiting up to five seconds for in-flight requests. Idle rate
// limiter entries are swept while the server runs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if s.limiter != nil {
		sweepCtx, stopSweep := context.WithCancel(ctx)
		defer stopSweep()
		go s.limiter.Run(sweepCtx, limiterSweepInterval, limiterIdleWindow)
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpserver: shutdown: %w", err)
	}
	return <-errCh
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
