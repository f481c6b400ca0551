// Package redis connects to Redis with github.com/redis/go-redis/v9 and
// exposes a small context-aware key-value Storage on top of the client.
//
// qrbench uses Redis only as an optional shared cache for npm registry
// lookups. When REDIS_URL is empty the caller skips Connect entirely and
// falls back to the in-process cache.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	kv := redis.NewStorage(client, "qrbench:")
package redis
