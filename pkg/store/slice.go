package store

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrymomot/qrbench/pkg/clone"
)

// Action describes an intended state transition.
type Action struct {
	Type    string
	Payload any
	Meta    any
}

// Reducer computes the next state from an owned draft and an action.
type Reducer[S any] func(draft S, action Action) S

// ActionCreator builds an action for one reducer key.
type ActionCreator func(payload any, meta ...any) Action

// Slice is a named bundle of initial state, reducers and action creators.
type Slice[S any] struct {
	name     string
	initial  S
	reducers map[string]Reducer[S]
	keys     []string
}

// NewSlice builds a slice. It panics when name is empty or a reducer is nil,
// since both are programming errors that must fail at startup.
func NewSlice[S any](name string, initial S, reducers map[string]Reducer[S]) *Slice[S] {
	if name == "" {
		panic("store: slice name cannot be empty")
	}

	s := &Slice[S]{
		name:     name,
		initial:  clone.Deep(initial),
		reducers: make(map[string]Reducer[S], len(reducers)),
		keys:     slices.Sorted(maps.Keys(reducers)),
	}
	for key, fn := range reducers {
		if fn == nil {
			panic(fmt.Sprintf("store: reducer %q of slice %q is nil", key, name))
		}
		s.reducers[s.Type(key)] = fn
	}
	return s
}

// Name returns the slice name used as the action type namespace.
func (s *Slice[S]) Name() string { return s.name }

// Initial returns a copy of the initial state.
func (s *Slice[S]) Initial() S { return clone.Deep(s.initial) }

// Keys returns the registered reducer keys in sorted order.
func (s *Slice[S]) Keys() []string { return slices.Clone(s.keys) }

// Type returns the namespaced action type for a reducer key.
func (s *Slice[S]) Type(key string) string {
	return s.name + "/" + key
}

// Has reports whether key is a registered reducer.
func (s *Slice[S]) Has(key string) bool {
	_, ok := s.reducers[s.Type(key)]
	return ok
}

// Action returns the action creator for key.
func (s *Slice[S]) Action(key string) (ActionCreator, error) {
	if !s.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReducer, s.Type(key))
	}
	return s.creator(key), nil
}

// Actions returns one action creator per reducer key.
func (s *Slice[S]) Actions() map[string]ActionCreator {
	out := make(map[string]ActionCreator, len(s.keys))
	for _, key := range s.keys {
		out[key] = s.creator(key)
	}
	return out
}

func (s *Slice[S]) creator(key string) ActionCreator {
	typ := s.Type(key)
	return func(payload any, meta ...any) Action {
		a := Action{Type: typ, Payload: payload}
		if len(meta) > 0 {
			a.Meta = meta[0]
		}
		return a
	}
}

// Reduce applies action to a deep copy of state. Actions that match no
// reducer return the copy unchanged.
func (s *Slice[S]) Reduce(state S, action Action) S {
	draft := clone.Deep(state)
	fn, ok := s.reducers[action.Type]
	if !ok {
		return draft
	}
	return fn(draft, action)
}

// Handle adapts a typed payload reducer. An action whose payload is not a P
// leaves the draft unchanged.
func Handle[S, P any](fn func(draft S, payload P) S) Reducer[S] {
	return func(draft S, action Action) S {
		payload, ok := action.Payload.(P)
		if !ok {
			return draft
		}
		return fn(draft, payload)
	}
}

// HandleMeta adapts a reducer that reads both a typed payload and a typed meta
// tag. Mismatched payload or meta types leave the draft unchanged.
func HandleMeta[S, P, M any](fn func(draft S, payload P, meta M) S) Reducer[S] {
	return func(draft S, action Action) S {
		payload, ok := action.Payload.(P)
		if !ok {
			return draft
		}
		meta, ok := action.Meta.(M)
		if !ok {
			return draft
		}
		return fn(draft, payload, meta)
	}
}
