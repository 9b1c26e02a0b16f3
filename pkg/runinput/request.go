package runinput

import (
	"log/slog"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
)

// Request is a validated run. Exactly one of DatasetID and Vectors is set.
type Request struct {
	Provider  Provider
	APIKey    string
	IndexName string
	// ClusterURL is set for Qdrant only, without a trailing slash.
	ClusterURL     string
	Namespace      string
	DistanceMetric string
	DatasetID      string
	Vectors        []embedding.Item
	BatchSize      int
	IDField        string
}

// HasDataset reports whether items come from a dataset.
func (r Request) HasDataset() bool {
	return r.DatasetID != ""
}

// LogValue implements slog.LogValuer. The API key is never included.
func (r Request) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("provider", string(r.Provider)),
		slog.String("index_name", r.IndexName),
		slog.Int("batch_size", r.BatchSize),
		slog.String("id_field", r.IDField),
	}
	switch r.Provider {
	case ProviderQdrant:
		attrs = append(attrs,
			slog.String("cluster_url", r.ClusterURL),
			slog.String("distance_metric", r.DistanceMetric),
		)
	default:
		attrs = append(attrs, slog.String("namespace", r.Namespace))
	}
	if r.HasDataset() {
		attrs = append(attrs, slog.String("dataset_id", r.DatasetID))
	} else {
		attrs = append(attrs, slog.Int("inline_vectors", len(r.Vectors)))
	}
	return slog.GroupValue(attrs...)
}
