package store

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/dmitrymomot/qrbench/pkg/broadcast"
	"github.com/dmitrymomot/qrbench/pkg/clone"
)

// TopicState is the broadcast topic carrying state snapshots.
const TopicState = "state"

const defaultFeedBuffer = 16

// BoundAction creates an action for one reducer and dispatches it immediately.
type BoundAction func(payload any, meta ...any)

// Store is a live, reducer-backed state container built from a Slice.
type Store[S any] struct {
	slice   *Slice[S]
	logger  *slog.Logger
	feed    broadcast.Broadcaster[S]
	bound   map[string]BoundAction
	mu      sync.Mutex
	state   S
	version uint64
}

// New materializes a store from slice.
func New[S any](slice *Slice[S], opts ...Option[S]) *Store[S] {
	o := &options[S]{
		logger:     slog.New(slog.DiscardHandler),
		feedBuffer: defaultFeedBuffer,
	}
	for _, opt := range opts {
		opt(o)
	}

	state := slice.Initial()
	if o.override != nil {
		state = mergeShallow(state, clone.Deep(*o.override))
	}

	feed := o.broadcaster
	if feed == nil {
		feed = broadcast.NewMemoryBroadcaster[S](o.feedBuffer)
	}

	st := &Store[S]{
		slice:  slice,
		logger: o.logger.With(slog.String("store", slice.Name())),
		feed:   feed,
		state:  state,
	}

	st.bound = make(map[string]BoundAction, len(slice.keys))
	for key, create := range slice.Actions() {
		st.bound[key] = func(payload any, meta ...any) {
			st.Dispatch(create(payload, meta...))
		}
	}

	return st
}

// Slice returns the slice the store was built from.
func (st *Store[S]) Slice() *Slice[S] { return st.slice }

// Dispatch applies action and returns a snapshot of the resulting state.
// Unknown action types leave the state unchanged.
func (st *Store[S]) Dispatch(action Action) S {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.slice.reducers[action.Type]; !ok {
		st.logger.Debug("unknown action ignored", slog.String("action", action.Type))
	}

	st.state = st.slice.Reduce(st.state, action)
	st.version++
	st.publish(action.Type)

	st.logger.Debug("action dispatched",
		slog.String("action", action.Type),
		slog.Uint64("version", st.version),
	)

	return clone.Deep(st.state)
}

// publish sends one snapshot, shared by all subscribers, to the feed. Feeds
// that report no subscribers are skipped.
func (st *Store[S]) publish(actionType string) {
	if f, ok := st.feed.(interface{ Len() int }); ok && f.Len() == 0 {
		return
	}
	if err := st.feed.Publish(context.Background(), TopicState, clone.Deep(st.state)); err != nil {
		st.logger.Debug("snapshot not published", slog.String("action", actionType), slog.Any("error", err))
	}
}

// State returns a snapshot of the current state.
func (st *Store[S]) State() S {
	st.mu.Lock()
	defer st.mu.Unlock()
	return clone.Deep(st.state)
}

// Version returns the number of dispatches applied so far.
func (st *Store[S]) Version() uint64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.version
}

// Bind returns the bound dispatcher for key. Dispatching through an
// unregistered key is a no-op on the state.
func (st *Store[S]) Bind(key string) BoundAction {
	if fn, ok := st.bound[key]; ok {
		return fn
	}
	typ := st.slice.Type(key)
	return func(payload any, meta ...any) {
		a := Action{Type: typ, Payload: payload}
		if len(meta) > 0 {
			a.Meta = meta[0]
		}
		st.Dispatch(a)
	}
}

// Bound returns one bound dispatcher per reducer key.
func (st *Store[S]) Bound() map[string]BoundAction {
	out := make(map[string]BoundAction, len(st.bound))
	for key, fn := range st.bound {
		out[key] = fn
	}
	return out
}

// Use returns the merged read/act surface of the store.
func (st *Store[S]) Use() View[S] {
	return View[S]{
		State:   st.State(),
		Actions: st.Bound(),
	}
}

// Subscribe returns a feed of state snapshots, one per dispatch.
func (st *Store[S]) Subscribe(ctx context.Context) broadcast.Subscriber[S] {
	return st.feed.Subscribe(ctx)
}

// Close ends all snapshot subscriptions.
func (st *Store[S]) Close() error {
	return st.feed.Close()
}

// View is a snapshot of the state together with the bound dispatchers, so
// callers can read and act through a single value.
type View[S any] struct {
	State   S
	Actions map[string]BoundAction
}

// Do dispatches the reducer registered under key.
func (v View[S]) Do(key string, payload any, meta ...any) error {
	fn, ok := v.Actions[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownReducer, key)
	}
	fn(payload, meta...)
	return nil
}

// mergeShallow copies the non-zero top-level fields of partial onto base.
// Maps merge key by key; any other kind is replaced when partial is non-zero.
func mergeShallow[S any](base, partial S) S {
	dst := reflect.ValueOf(&base).Elem()
	src := reflect.ValueOf(&partial).Elem()

	switch dst.Kind() {
	case reflect.Struct:
		for i := range dst.NumField() {
			field := dst.Field(i)
			value := src.Field(i)
			if !field.CanSet() || value.IsZero() {
				continue
			}
			field.Set(value)
		}
	case reflect.Map:
		if src.IsNil() {
			return base
		}
		if dst.IsNil() {
			dst.Set(reflect.MakeMapWithSize(dst.Type(), src.Len()))
		}
		iter := src.MapRange()
		for iter.Next() {
			dst.SetMapIndex(iter.Key(), iter.Value())
		}
	default:
		if !src.IsZero() {
			dst.Set(src)
		}
	}

	return base
}
