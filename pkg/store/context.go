package store

import (
	"context"
	"fmt"
	"net/http"
)

type contextKey[S any] struct{}

// WithContext scopes st to ctx.
func WithContext[S any](ctx context.Context, st *Store[S]) context.Context {
	return context.WithValue(ctx, contextKey[S]{}, st)
}

// FromContext returns the nearest store of state type S.
func FromContext[S any](ctx context.Context) (*Store[S], error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	st, ok := ctx.Value(contextKey[S]{}).(*Store[S])
	if !ok || st == nil {
		var zero S
		return nil, fmt.Errorf("%w: no store for %T", ErrNoProvider, zero)
	}
	return st, nil
}

// MustUse returns the merged view of the nearest store and panics with
// ErrNoProvider when there is none.
func MustUse[S any](ctx context.Context) View[S] {
	st, err := FromContext[S](ctx)
	if err != nil {
		panic(err)
	}
	return st.Use()
}

// Provider returns a middleware that scopes st to every request context.
func Provider[S any](st *Store[S]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), st)))
		})
	}
}
