// Package store provides a small reducer-based state container.
//
// A Slice bundles a name, an initial state and a map of reducers. It derives
// namespaced action types ("<name>/<key>") and action creators from the
// reducer keys, and exposes a single Reduce function that routes an action to
// its reducer. A Store wraps a Slice into a live container: it owns the
// current state, serializes every Dispatch, hands out deep-cloned snapshots
// and publishes each new snapshot to subscribers.
//
// # Reducers
//
// A reducer receives a draft and the action and returns the next state:
//
//	func(draft State, a store.Action) State
//
// The draft is an owned deep copy of the current state, so reducers may mutate
// it freely and return it. A state value handed out by the store never shares
// mutable memory with any other snapshot. Use Handle and HandleMeta to write
// reducers against a typed payload instead of the raw Action.
//
// # Usage
//
//	type Counter struct{ N int }
//
//	slice := store.NewSlice("counter", Counter{}, map[string]store.Reducer[Counter]{
//		"add": store.Handle(func(s Counter, n int) Counter {
//			s.N += n
//			return s
//		}),
//	})
//
//	st := store.New(slice, store.WithOverride(Counter{N: 10}))
//	st.Bind("add")(5)
//	st.State().N // 15
//
// # Providers
//
// WithContext and Provider scope a store to a context or to an HTTP handler
// subtree. FromContext and MustUse read it back; outside any provider they
// fail with ErrNoProvider.
//
// # Concurrency
//
// Dispatch is safe for concurrent use. Actions are applied one at a time in
// the order Dispatch acquires the store, and a reducer is never interleaved
// with another.
package store
