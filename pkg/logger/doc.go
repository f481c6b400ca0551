// Package logger builds the *slog.Logger used across qrbench.
//
// New applies functional options on top of a JSON handler at INFO level and
// wraps the result with a context-aware handler that copies values such as
// the request id from context.Context into every record.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "qrbench"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.InfoContext(ctx, "batch finished", logger.BatchID(id), logger.Duration(time.Since(start)))
//
// Attribute helpers in attr.go keep key names consistent. Error and Errors
// return an empty attribute for nil errors, so they can be passed without a
// nil check.
package logger
