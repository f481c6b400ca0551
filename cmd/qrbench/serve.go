package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrbench/modules/bench"
	"github.com/dmitrymomot/qrbench/pkg/file"
	"github.com/dmitrymomot/qrbench/pkg/httpserver"
	"github.com/dmitrymomot/qrbench/pkg/logger"
	"github.com/dmitrymomot/qrbench/pkg/ratelimiter"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Example: `  # Listen on the address from HTTP_ADDR
  qrbench serve

  # Override the address and start from a profile
  qrbench serve --addr :9000 --profile bench.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := root.bootstrap(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				a.cfg.HTTP.Addr = addr
			}

			opts := []bench.Option{
				bench.WithLogger(a.log),
				bench.WithPackages(a.registry),
				bench.WithExporter(a.exporter),
				bench.WithHealthChecks(a.checks...),
			}
			if base := a.cfg.Storage.BaseURL; a.cfg.Storage.Driver == file.DriverLocal && strings.HasPrefix(base, "/") && strings.HasSuffix(base, "/") {
				opts = append(opts, bench.WithStatic(base, http.FileServer(http.Dir(a.cfg.Storage.LocalDir))))
			}
			if a.cfg.RateLimit.Enabled() {
				store := ratelimiter.NewMemoryStore()
				a.closers = append(a.closers, func(context.Context) error {
					store.Close()
					return nil
				})
				limiter, err := ratelimiter.NewBucket(store, a.cfg.RateLimit)
				if err != nil {
					return err
				}
				opts = append(opts, bench.WithRateLimit(limiter))
			}
			module := bench.New(a.store, a.runner, a.notifier, opts...)

			srv := httpserver.NewFromConfig(a.cfg.HTTP,
				httpserver.WithLogger(a.log),
				httpserver.WithStopHook(a.close),
			)
			if err := srv.Run(ctx, module.Handle()); err != nil {
				a.log.ErrorContext(ctx, "server stopped", logger.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
