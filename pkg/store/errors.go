package store

import "errors"

var (
	// ErrNoProvider is returned when a store is requested from a context that
	// was never scoped with WithContext or Provider.
	ErrNoProvider = errors.New("store: used outside of a provider")

	// ErrUnknownReducer is returned when an action key is not registered on the slice.
	ErrUnknownReducer = errors.New("store: unknown reducer")
)
