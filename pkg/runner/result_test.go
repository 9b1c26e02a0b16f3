package runner_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vectorwriter/pkg/billing"
	"github.com/dmitrymomot/vectorwriter/pkg/runner"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

func TestResult_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   runner.Result
		expected string
	}{
		{
			name: "pinecone",
			result: runner.Result{
				Summary: vectordb.Summary{
					Provider:      vectordb.NamePinecone,
					Target:        "docs",
					TotalUpserted: 10,
					TotalBatches:  1,
					Namespace:     "(default)",
					Host:          "https://docs.svc.pinecone.io",
				},
				Billing:        billing.Calculate(10),
				ProcessingTime: 1234567 * time.Microsecond,
			},
			expected: `{
				"_summary": true,
				"provider": "pinecone",
				"total_vectors_upserted": 10,
				"total_batches": 1,
				"processing_time": 1.235,
				"billing": {"total_vectors": 10, "amount": 0.004, "rate_per_vector": 0.0004},
				"index_name": "docs",
				"namespace": "(default)"
			}`,
		},
		{
			name: "qdrant with failed batches",
			result: runner.Result{
				Summary: vectordb.Summary{
					Provider:       vectordb.NameQdrant,
					Target:         "docs",
					TotalUpserted:  100,
					TotalBatches:   2,
					FailedBatches:  1,
					ClusterURL:     "https://x.cloud.qdrant.io",
					DistanceMetric: "Cosine",
				},
				Billing:        billing.Calculate(100),
				ProcessingTime: 2 * time.Second,
			},
			expected: `{
				"_summary": true,
				"provider": "qdrant",
				"total_vectors_upserted": 100,
				"total_batches": 2,
				"failed_batches": 1,
				"processing_time": 2,
				"billing": {"total_vectors": 100, "amount": 0.04, "rate_per_vector": 0.0004},
				"collection_name": "docs",
				"cluster_url": "https://x.cloud.qdrant.io",
				"distance_metric": "Cosine",
				"collection_created": false
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}
