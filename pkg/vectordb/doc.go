// Package vectordb writes embedding items into Pinecone indexes and Qdrant
// collections over their REST APIs.
//
// A Provider knows how to prepare its target, shape records and send one
// batch. The Writer drives a provider through a run:
//
//	p := vectordb.NewQdrant(vectordb.QdrantConfig{
//	    APIKey:         key,
//	    ClusterURL:     "https://xyz.cloud.qdrant.io:6333",
//	    Collection:     "docs",
//	    DistanceMetric: "Cosine",
//	})
//
//	w := vectordb.NewWriter(vectordb.WithLogger(log))
//	summary, err := w.Write(ctx, p, items, 100, "chunk_id")
//
// Write is EnsureTarget, Build, Upsert and Summarize in sequence; callers
// that track progress of each stage may call them individually.
//
// # Pinecone
//
// The data plane host is never taken from input. It is resolved through the
// control plane (https://api.pinecone.io) and may be cached with a HostCache.
// Cache keys contain a SHA-256 digest of the API key, never the key itself.
// A failed upsert removes the cached host so the next run resolves it again.
//
// # Qdrant
//
// The collection is created with the first item's dimensionality when the
// existence check reports it missing or fails. A batch counts only when
// Qdrant answers with status "ok"; other batches are logged and skipped.
//
// # Errors
//
// Configuration problems match ErrConfiguration. HTTP failures are returned
// as-is from restclient and already have the API key redacted.
package vectordb
