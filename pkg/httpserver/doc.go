// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run listens, serves and blocks until the context is cancelled, SIGINT or
// SIGTERM arrives, or Shutdown is called. Request contexts derive from a
// base context that is cancelled as soon as shutdown begins, so long-lived
// streams (server-sent events) return instead of holding the shutdown
// deadline.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(ctx context.Context) error { return notifier.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthHandler reports the result of named readiness checks as JSON.
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown and
// stop hook errors with ErrShutdown.
package httpserver
