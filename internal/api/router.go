package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/idnakit/internal/registry"
	"github.com/dmitrymomot/idnakit/pkg/health"
	"github.com/dmitrymomot/idnakit/pkg/idnacache"
)

const defaultRequestTimeout = 10 * time.Second

// Option configures the router.
type Option func(*routerConfig)

type routerConfig struct {
	logger   *slog.Logger
	registry *registry.Registry
	checks   health.Checks
	timeout  time.Duration
}

// WithLogger sets the logger for access logs and server errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *routerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRegistry mounts the /v1/domains endpoints.
func WithRegistry(r *registry.Registry) Option {
	return func(c *routerConfig) {
		c.registry = r
	}
}

// WithChecks sets the readiness checks served at /health/ready.
func WithChecks(checks health.Checks) Option {
	return func(c *routerConfig) {
		c.checks = checks
	}
}

// WithRequestTimeout bounds request handling. Default: 10 seconds.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *routerConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// statsReporter is implemented by *idnacache.Converter.
type statsReporter interface {
	Enabled() bool
	Stats() idnacache.Stats
}

// NewRouter builds the HTTP API over conv.
func NewRouter(conv Converter, opts ...Option) http.Handler {
	cfg := &routerConfig{
		logger:  slog.New(slog.DiscardHandler),
		timeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger

	r := chi.NewRouter()
	r.Use(
		middleware.CleanPath,
		RequestID,
		AccessLog(log),
		Recover(log),
		middleware.Timeout(cfg.timeout),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, log, newHTTPError(http.StatusNotFound, CodeNotFound, "route not found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, log, newHTTPError(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed", nil))
	})

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(cfg.checks, health.WithLogger(log)))

	ch := &convertHandlers{conv: conv, log: log}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/is_ascii", ch.isASCII)
		r.Get("/is_punycode", ch.isPunycode)
		r.Get("/to_ascii", ch.toASCII)
		r.Get("/to_unicode", ch.toUnicode)
		r.Get("/to_unicode_lossy", ch.toUnicodeLossy)

		if sr, ok := conv.(statsReporter); ok && sr.Enabled() {
			r.Get("/cache/stats", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, sr.Stats())
			})
		}

		if cfg.registry != nil {
			dh := &domainHandlers{reg: cfg.registry, log: log}
			r.Route("/domains", func(r chi.Router) {
				r.Post("/", dh.register)
				r.Get("/", dh.list)
				r.Get("/{name}", dh.get)
				r.Delete("/{name}", dh.delete)
				r.Get("/{name}/challenge", dh.challenge)
				r.Post("/{name}/verify", dh.verify)
			})
		}
	})

	return r
}
