// Package cache provides the caches used for npm registry lookups.
//
// LRUCache is a generic, thread-safe in-process cache with a fixed capacity
// and an optional per-entry time to live. Get, Put and Remove are O(1).
//
// Remote stores JSON-encoded values in any KV backend, such as
// pkg/redis.Storage, so several processes can share results.
//
// Both satisfy Cache, which is what consumers depend on:
//
//	var c cache.Cache[registry.PackageInfo] = cache.NewMemory[registry.PackageInfo](128, 10*time.Minute)
//	if info, ok := c.Get(ctx, "qrcode"); ok {
//		return info
//	}
package cache
