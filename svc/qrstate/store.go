package qrstate

import (
	"log/slog"

	"github.com/dmitrymomot/qrbench/pkg/store"
)

// Store is the application store with typed helpers over its bound actions.
type Store struct {
	*store.Store[State]
}

// Option configures New.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	override *State
	buffer   int
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithOverride merges the non-zero top-level fields of partial over the
// default state.
func WithOverride(partial State) Option {
	return func(c *config) { c.override = &partial }
}

// WithFeedBuffer sets the per-subscriber buffer of the snapshot feed.
func WithFeedBuffer(size int) Option {
	return func(c *config) { c.buffer = size }
}

// New creates the application store.
func New(opts ...Option) *Store {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}

	storeOpts := []store.Option[State]{
		store.WithLogger[State](c.logger),
		store.WithFeedBuffer[State](c.buffer),
	}
	if c.override != nil {
		storeOpts = append(storeOpts, store.WithOverride(Normalize(*c.override)))
	}

	return &Store{Store: store.New(NewSlice(), storeOpts...)}
}

// SetValue sets the encoded content.
func (s *Store) SetValue(v string) { s.Bind(ActionSetValue)(v) }

// SetSize sets the edge length in pixels, clamped to [MinSize, MaxSize].
func (s *Store) SetSize(v int) { s.Bind(ActionSetSize)(v) }

// SetIterations sets the batch length, clamped to [MinIterations, MaxIterations].
func (s *Store) SetIterations(v int) { s.Bind(ActionSetIterations)(v) }

// SetLogo sets the logo data URL. An empty string removes it.
func (s *Store) SetLogo(v string) { s.Bind(ActionSetLogo)(v) }

// SetStyleSettings replaces the render style.
func (s *Store) SetStyleSettings(v StyleSettings) { s.Bind(ActionSetStyleSettings)(v) }

// SetCurrentID marks the metric id shown as the latest result.
func (s *Store) SetCurrentID(id string) { s.Bind(ActionSetCurrentID)(id) }

// AddMetric appends m to the stack of library and refreshes its aggregate.
func (s *Store) AddMetric(library string, m GenerationMetric) {
	s.Bind(ActionAddMetric)(m, library)
}

// Reset drops all stacks and the current id.
func (s *Store) Reset() { s.Bind(ActionReset)(nil) }

// Stack returns a snapshot of the stack of library. Unknown libraries yield
// an empty stack.
func (s *Store) Stack(library string) MetricStack {
	return s.State().Stacks[library]
}

// Current returns the current metric of library.
func (s *Store) Current(library string) (GenerationMetric, bool) {
	return s.State().Current(library)
}
