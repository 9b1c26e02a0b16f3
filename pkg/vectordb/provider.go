package vectordb

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
)

// Provider names.
const (
	NamePinecone = "pinecone"
	NameQdrant   = "qdrant"
)

// Provider is one vector database target.
type Provider interface {
	// Name returns the provider identifier.
	Name() string
	// EnsureTarget resolves or creates the index or collection.
	EnsureTarget(ctx context.Context, dimensions int) error
	// BuildRecord shapes one item for this provider.
	BuildRecord(item embedding.Item, idField string) Record
	// UpsertBatch sends one batch.
	UpsertBatch(ctx context.Context, batch []Record) (BatchResult, error)
	// Describe fills provider specific summary fields.
	Describe(s *Summary)
}

// Record is a provider ready upsert unit.
type Record struct {
	ID       string
	Vector   []float32
	Metadata map[string]any
}

// BatchResult is the outcome of one upsert call.
type BatchResult struct {
	// Index is 0-based.
	Index int
	// Start and End are 1-based inclusive record positions.
	Start    int
	End      int
	Sent     int
	Upserted int
	OK       bool
	Status   string
}

// ProviderOption configures a provider.
type ProviderOption func(*providerOptions)

type providerOptions struct {
	clientOpts []restclient.Option
	cache      HostCache
	log        *slog.Logger
}

// WithClientOptions passes options to the provider's restclient.
// The service name is always set by the provider.
func WithClientOptions(opts ...restclient.Option) ProviderOption {
	return func(o *providerOptions) {
		o.clientOpts = append(o.clientOpts, opts...)
	}
}

// WithHostCache enables host caching. Only Pinecone uses it.
func WithHostCache(c HostCache) ProviderOption {
	return func(o *providerOptions) {
		o.cache = c
	}
}

// WithProviderLogger sets the provider logger.
func WithProviderLogger(l *slog.Logger) ProviderOption {
	return func(o *providerOptions) {
		if l != nil {
			o.log = l
		}
	}
}

func newProviderOptions(opts []ProviderOption) providerOptions {
	o := providerOptions{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// recordID returns the id field value when it is a non-empty string and a
// fresh UUIDv4 otherwise.
func recordID(item embedding.Item, idField string) string {
	if s, ok := item.Fields[idField].(string); ok && s != "" {
		return s
	}
	return uuid.NewString()
}

// buildMetadata copies every non-reserved field except idField that keep accepts.
func buildMetadata(item embedding.Item, idField string, keep func(any) bool) map[string]any {
	md := make(map[string]any, len(item.Fields))
	for k, v := range item.Fields {
		if k == idField || embedding.IsReserved(k) {
			continue
		}
		if keep(v) {
			md[k] = v
		}
	}
	return md
}

func isScalar(v any) bool {
	switch n := v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return !math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)
	case json.Number:
		_, err := n.Float64()
		return err == nil
	default:
		return false
	}
}
