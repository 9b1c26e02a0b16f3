package runner

import (
	"encoding/json"
	"math"
	"time"

	"github.com/dmitrymomot/vectorwriter/pkg/billing"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

// Result is a successful run.
type Result struct {
	Summary        vectordb.Summary
	Billing        billing.Charge
	ProcessingTime time.Duration
	// States lists the lifecycle states the run went through.
	States []string
}

type resultJSON struct {
	Summary              bool           `json:"_summary"`
	Provider             string         `json:"provider"`
	TotalVectorsUpserted int            `json:"total_vectors_upserted"`
	TotalBatches         int            `json:"total_batches"`
	FailedBatches        int            `json:"failed_batches,omitempty"`
	ProcessingTime       float64        `json:"processing_time"`
	Billing              billing.Charge `json:"billing"`

	IndexName string `json:"index_name,omitempty"`
	Namespace string `json:"namespace,omitempty"`

	CollectionName    string `json:"collection_name,omitempty"`
	ClusterURL        string `json:"cluster_url,omitempty"`
	DistanceMetric    string `json:"distance_metric,omitempty"`
	CollectionCreated *bool  `json:"collection_created,omitempty"`
}

// MarshalJSON renders the run output document.
func (r Result) MarshalJSON() ([]byte, error) {
	s := r.Summary
	out := resultJSON{
		Summary:              true,
		Provider:             s.Provider,
		TotalVectorsUpserted: s.TotalUpserted,
		TotalBatches:         s.TotalBatches,
		FailedBatches:        s.FailedBatches,
		ProcessingTime:       math.Round(r.ProcessingTime.Seconds()*1000) / 1000,
		Billing:              r.Billing,
	}

	switch s.Provider {
	case vectordb.NamePinecone:
		out.IndexName = s.Target
		out.Namespace = s.Namespace
	case vectordb.NameQdrant:
		created := s.CollectionCreated
		out.CollectionName = s.Target
		out.ClusterURL = s.ClusterURL
		out.DistanceMetric = s.DistanceMetric
		out.CollectionCreated = &created
	}

	return json.Marshal(out)
}
