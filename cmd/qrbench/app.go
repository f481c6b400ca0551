package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/qrbench/pkg/cache"
	"github.com/dmitrymomot/qrbench/pkg/file"
	"github.com/dmitrymomot/qrbench/pkg/httpserver"
	"github.com/dmitrymomot/qrbench/pkg/logger"
	"github.com/dmitrymomot/qrbench/pkg/redis"
	"github.com/dmitrymomot/qrbench/svc/benchmark"
	"github.com/dmitrymomot/qrbench/svc/notify"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
	"github.com/dmitrymomot/qrbench/svc/registry"
	"github.com/dmitrymomot/qrbench/svc/report"
)

// app wires the services shared by the commands.
type app struct {
	cfg      Config
	log      *slog.Logger
	store    *qrstate.Store
	notifier *notify.Notifier
	runner   *benchmark.Runner
	registry *registry.Client
	storage  file.Storage
	exporter *report.Exporter
	checks   []httpserver.Check
	closers  []func(context.Context) error
}

var _ cache.KV = (*redis.Storage)(nil)

func newApp(ctx context.Context, cfg Config, profile *Profile) (*app, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	logger.SetAsDefault(log)
	a := &app{cfg: cfg, log: log}

	storeOpts := []qrstate.Option{qrstate.WithLogger(log)}
	if profile != nil {
		storeOpts = append(storeOpts, qrstate.WithOverride(*profile))
	}
	a.store = qrstate.New(storeOpts...)
	a.notifier = notify.New(notify.WithLogger(log))
	a.runner = benchmark.New(a.store,
		benchmark.WithNotifier(a.notifier),
		benchmark.WithLogger(log),
	)
	a.closers = append(a.closers,
		a.waitRunner,
		func(context.Context) error { return a.notifier.Close() },
		func(context.Context) error { return a.store.Close() },
	)

	registryOpts := []registry.Option{registry.WithLogger(log)}
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		kv := redis.NewStorage(client, cfg.Redis.KeyPrefix)
		registryOpts = append(registryOpts, registry.WithCache(cache.Tiered[registry.PackageInfo]{
			cache.NewMemory[registry.PackageInfo](cfg.Registry.CacheSize, cfg.Registry.CacheTTL),
			cache.NewRemote[registry.PackageInfo](kv, cfg.Registry.CacheTTL, log),
		}))
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		a.closers = append(a.closers, func(context.Context) error { return kv.Close() })
		log.InfoContext(ctx, "registry cache backed by redis")
	}
	a.registry = registry.New(cfg.Registry, registryOpts...)

	a.storage, err = file.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	a.exporter = report.NewExporter(a.storage, report.WithLogger(log))

	return a, nil
}

func newLogger(cfg Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, "qrbench"),
		logger.WithOutput(os.Stderr),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
		logger.WithAttr(slog.String("version", version)),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if cfg.LogFormat != "" {
		format, err := logger.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(format))
	}
	return logger.New(opts...), nil
}

// waitRunner waits for a background batch until ctx is done.
func (a *app) waitRunner(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.runner.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close runs the closers in order and joins their errors.
func (a *app) close(ctx context.Context) error {
	var errs []error
	for _, fn := range a.closers {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		a.log.WarnContext(ctx, "shutdown incomplete", logger.Errors(errs...))
	}
	return errors.Join(errs...)
}
