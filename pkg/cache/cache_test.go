package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbench/pkg/cache"
)

func TestLRUCache(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		_, ok = c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("update returns previous value", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](3)
		c.Put("a", 1)
		old, existed := c.Put("a", 2)
		assert.True(t, existed)
		assert.Equal(t, 1, old)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](2)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("entries expire", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		c := cache.NewLRUCache[string, int](3)
		c.SetClock(func() time.Time { return now })
		c.SetTTL(time.Minute)

		c.Put("a", 1)
		now = now.Add(59 * time.Second)
		_, ok := c.Get("a")
		assert.True(t, ok)

		now = now.Add(time.Second)
		_, ok = c.Get("a")
		assert.False(t, ok)
		assert.Zero(t, c.Len())
	})

	t.Run("panics on invalid capacity", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
	})
}

type fakeKV struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.data[key], nil
}

func (f *fakeKV) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.data[key] = val
	f.ttls[key] = ttl
	return nil
}

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRemote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		kv := newFakeKV()
		c := cache.NewRemote[item](kv, time.Hour, nil)

		_, ok := c.Get(ctx, "k")
		assert.False(t, ok)

		c.Set(ctx, "k", item{Name: "qrcode", Count: 3})
		got, ok := c.Get(ctx, "k")
		require.True(t, ok)
		assert.Equal(t, item{Name: "qrcode", Count: 3}, got)
		assert.JSONEq(t, `{"name":"qrcode","count":3}`, string(kv.data["k"]))
		assert.Equal(t, time.Hour, kv.ttls["k"])
	})

	t.Run("backend errors are misses", func(t *testing.T) {
		t.Parallel()
		kv := newFakeKV()
		kv.err = errors.New("down")
		c := cache.NewRemote[item](kv, 0, nil)

		c.Set(ctx, "k", item{Name: "x"})
		_, ok := c.Get(ctx, "k")
		assert.False(t, ok)
	})

	t.Run("corrupt entries are misses", func(t *testing.T) {
		t.Parallel()
		kv := newFakeKV()
		kv.data["k"] = []byte("{")
		c := cache.NewRemote[item](kv, 0, nil)

		_, ok := c.Get(ctx, "k")
		assert.False(t, ok)
	})
}

func TestTiered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mem := cache.NewMemory[item](4, time.Minute)
	remote := cache.NewRemote[item](newFakeKV(), time.Minute, nil)
	remote.Set(ctx, "k", item{Name: "shared"})

	tiers := cache.Tiered[item]{mem, remote}
	got, ok := tiers.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "shared", got.Name)

	local, ok := mem.Get(ctx, "k")
	require.True(t, ok, "faster tier is back-filled")
	assert.Equal(t, "shared", local.Name)

	tiers.Set(ctx, "n", item{Name: "new"})
	_, ok = remote.Get(ctx, "n")
	assert.True(t, ok)

	_, ok = tiers.Get(ctx, "missing")
	assert.False(t, ok)
}
