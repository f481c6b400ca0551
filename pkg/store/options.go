package store

import (
	"log/slog"

	"github.com/dmitrymomot/qrbench/pkg/broadcast"
)

type options[S any] struct {
	override    *S
	logger      *slog.Logger
	broadcaster broadcast.Broadcaster[S]
	feedBuffer  int
}

// Option configures a Store.
type Option[S any] func(*options[S])

// WithOverride merges the non-zero top-level fields of partial over the
// slice's initial state when the store is created.
func WithOverride[S any](partial S) Option[S] {
	return func(o *options[S]) {
		o.override = &partial
	}
}

// WithLogger sets the logger used for dispatch diagnostics. Nil is ignored.
func WithLogger[S any](l *slog.Logger) Option[S] {
	return func(o *options[S]) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBroadcaster publishes every new snapshot through b instead of the
// store's own in-memory feed.
func WithBroadcaster[S any](b broadcast.Broadcaster[S]) Option[S] {
	return func(o *options[S]) {
		if b != nil {
			o.broadcaster = b
		}
	}
}

// WithFeedBuffer sets the per-subscriber buffer of the default snapshot feed.
func WithFeedBuffer[S any](size int) Option[S] {
	return func(o *options[S]) {
		if size > 0 {
			o.feedBuffer = size
		}
	}
}
