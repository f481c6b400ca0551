package bench

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/qrbench/handler"
	"github.com/dmitrymomot/qrbench/pkg/httpserver"
	"github.com/dmitrymomot/qrbench/pkg/logger"
	"github.com/dmitrymomot/qrbench/pkg/ratelimiter"
	"github.com/dmitrymomot/qrbench/pkg/store"
	"github.com/dmitrymomot/qrbench/svc/benchmark"
	"github.com/dmitrymomot/qrbench/svc/notify"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
	"github.com/dmitrymomot/qrbench/svc/registry"
	"github.com/dmitrymomot/qrbench/svc/report"
)

// PackageClient resolves registry package info.
type PackageClient interface {
	PackageInfo(ctx context.Context, name string) (registry.PackageInfo, error)
}

// Module serves the benchmark API.
type Module struct {
	store    *qrstate.Store
	runner   *benchmark.Runner
	notifier *notify.Notifier
	packages PackageClient
	exporter *report.Exporter
	canStore bool
	static   map[string]http.Handler
	limiter  *ratelimiter.Bucket
	checks   []httpserver.Check
	logger   *slog.Logger
}

// Option configures a Module.
type Option func(*Module)

// WithPackages enables GET /packages/*.
func WithPackages(c PackageClient) Option {
	return func(m *Module) {
		m.packages = c
	}
}

// WithExporter sets the exporter used for downloads and enables artifact
// storage (?store=1 and /artifacts).
func WithExporter(e *report.Exporter) Option {
	return func(m *Module) {
		if e != nil {
			m.exporter = e
			m.canStore = true
		}
	}
}

// WithStatic serves h below prefix, which must end with a slash.
func WithStatic(prefix string, h http.Handler) Option {
	return func(m *Module) {
		if m.static == nil {
			m.static = make(map[string]http.Handler)
		}
		m.static[prefix] = http.StripPrefix(prefix, h)
	}
}

// WithRateLimit limits POST /generate and GET /packages/* per client IP.
func WithRateLimit(b *ratelimiter.Bucket) Option {
	return func(m *Module) {
		m.limiter = b
	}
}

// WithHealthChecks adds readiness checks to /healthz.
func WithHealthChecks(checks ...httpserver.Check) Option {
	return func(m *Module) {
		m.checks = append(m.checks, checks...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		m.logger = l
	}
}

// New creates the module.
func New(st *qrstate.Store, runner *benchmark.Runner, notifier *notify.Notifier, opts ...Option) *Module {
	m := &Module{
		store:    st,
		runner:   runner,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logger.OrDiscard(m.logger).With(logger.Component("http"))
	if m.exporter == nil {
		m.exporter = report.NewExporter(nil, report.WithLogger(m.logger))
	}
	return m
}

// Handle returns the router.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(m.logger),
		middleware.Recoverer,
		store.Provider(m.store.Store),
	)

	r.Get("/healthz", httpserver.HealthHandler(m.logger, m.checks...))

	r.Get("/state", handler.Wrap(m.getState))
	r.Patch("/state", handler.Wrap(m.patchState,
		handler.WithBinders[StatePatch](handler.BindJSON()),
	))

	r.Get("/logo", handler.Wrap(m.getLogo))
	r.Put("/logo", handler.Wrap(m.putLogo))
	r.Delete("/logo", handler.Wrap(m.deleteLogo))

	m.limited(r, "generate").Post("/generate", handler.Wrap(m.generate))

	r.Delete("/stacks", handler.Wrap(m.resetStacks))
	r.Route("/stacks/{library}", func(r chi.Router) {
		r.Get("/", handler.Wrap(m.getStack, handler.WithBinders[StackRequest](bindPath)))
		r.Get("/current", handler.Wrap(m.getCurrent, handler.WithBinders[StackRequest](bindPath)))
		r.Get("/export.{format}", handler.Wrap(m.export, handler.WithBinders[StackRequest](bindPath)))
	})

	if m.canStore {
		r.Get("/artifacts", handler.Wrap(m.listArtifacts))
	}
	if m.packages != nil {
		m.limited(r, "packages").Get("/packages/*", handler.Wrap(m.getPackage, handler.WithBinders[PackageRequest](bindPath)))
	}

	r.Get("/events", handler.Wrap(m.events))

	for prefix, h := range m.static {
		r.Handle(prefix+"*", h)
	}

	return r
}

// limited returns r guarded by the rate limiter. Each group has its own
// bucket per client.
func (m *Module) limited(r chi.Router, group string) chi.Router {
	if m.limiter == nil {
		return r
	}
	key := ratelimiter.Composite(ratelimiter.ByIP, func(*http.Request) string { return group })
	return r.With(ratelimiter.Middleware(m.limiter, key,
		ratelimiter.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			if errors.Is(err, ratelimiter.ErrLimitExceeded) {
				err = handler.ErrTooManyRequests.WithMessage("too many requests, retry later")
			}
			_ = handler.JSONError(err).Render(w, r)
		}),
	))
}

var bindPath = handler.BindPath(chi.URLParam)

type empty struct{}
