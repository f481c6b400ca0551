package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Cache is a string-keyed cache of V. Lookups never fail: backend errors
// are reported as misses.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V)
}

// Memory adapts LRUCache to Cache.
type Memory[V any] struct {
	lru *LRUCache[string, V]
}

// NewMemory creates an in-process cache of capacity entries living for ttl.
func NewMemory[V any](capacity int, ttl time.Duration) *Memory[V] {
	lru := NewLRUCache[string, V](capacity)
	lru.SetTTL(ttl)
	return &Memory[V]{lru: lru}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, bool) { return m.lru.Get(key) }

func (m *Memory[V]) Set(_ context.Context, key string, value V) { m.lru.Put(key, value) }

// KV is a byte-oriented key-value backend. A missing key yields nil, nil.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Remote stores JSON-encoded values in a KV backend.
type Remote[V any] struct {
	kv     KV
	ttl    time.Duration
	logger *slog.Logger
}

// NewRemote creates a Remote cache. A nil logger discards diagnostics.
func NewRemote[V any](kv KV, ttl time.Duration, logger *slog.Logger) *Remote[V] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Remote[V]{kv: kv, ttl: ttl, logger: logger}
}

func (r *Remote[V]) Get(ctx context.Context, key string) (V, bool) {
	var v V
	data, err := r.kv.Get(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
		return v, false
	}
	if data == nil {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		r.logger.WarnContext(ctx, "cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		return v, false
	}
	return v, true
}

func (r *Remote[V]) Set(ctx context.Context, key string, value V) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.WarnContext(ctx, "cache encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := r.kv.Set(ctx, key, data, r.ttl); err != nil {
		r.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Tiered reads from the first cache that has the key and back-fills the
// faster tiers. Writes go to every tier.
type Tiered[V any] []Cache[V]

func (t Tiered[V]) Get(ctx context.Context, key string) (V, bool) {
	for i, c := range t {
		if v, ok := c.Get(ctx, key); ok {
			for _, faster := range t[:i] {
				faster.Set(ctx, key, v)
			}
			return v, true
		}
	}
	var zero V
	return zero, false
}

func (t Tiered[V]) Set(ctx context.Context, key string, value V) {
	for _, c := range t {
		c.Set(ctx, key, value)
	}
}
