// Package cache provides a small in-process LRU with optional expiry. The
// Pinecone host resolver uses it to avoid describing the same index on every
// run.
//
//	hosts := cache.New[string, string](256, cache.WithTTL(10*time.Minute))
//	hosts.Put("pinecone:host:docs", "docs-abc123.svc.pinecone.io")
//	host, ok := hosts.Get("pinecone:host:docs")
//
// Expired entries are dropped lazily when read. All methods are safe for
// concurrent use.
package cache
