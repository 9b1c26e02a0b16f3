// Package redis provides helpers for connecting to Redis and using it as a
// small shared key-value store.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which pings with retries before handing out a client.
//   - Storage, a prefixed string key-value wrapper with expirations.
//   - Healthcheck, for readiness probes.
//
// Config can be populated from environment variables via
// github.com/caarlos0/env. Redis is optional: an empty REDIS_URL leaves
// Config.Enabled false.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := redis.NewStorage(client, cfg.KeyPrefix)
//	_ = store.Set(ctx, "pinecone:host:docs", "docs-abc.svc.pinecone.io", 10*time.Minute)
//
// # Errors
//
// Sentinel errors such as ErrNotReady are joined with the underlying
// go-redis error via errors.Join, so errors.Is works on both.
package redis
