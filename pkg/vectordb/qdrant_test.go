package vectordb_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

type fakeQdrant struct {
	mu          sync.Mutex
	exists      bool
	existsFail  bool
	statuses    []string
	created     map[string]any
	batchSizes  []int
	points      []map[string]any
	existsCalls int
}

func (f *fakeQdrant) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /collections/{name}/exists", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testKey, r.Header.Get("api-key"))
		f.mu.Lock()
		defer f.mu.Unlock()
		f.existsCalls++
		if f.existsFail {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":{"error":"not found"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"exists": f.exists},
			"status": "ok",
		})
	})
	mux.HandleFunc("PUT /collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "docs", r.PathValue("name"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.mu.Lock()
		f.created = body
		f.exists = true
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"result":true,"status":"ok"}`))
	})
	mux.HandleFunc("PUT /collections/{name}/points", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Points []map[string]any `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		f.mu.Lock()
		idx := len(f.batchSizes)
		f.batchSizes = append(f.batchSizes, len(body.Points))
		f.points = append(f.points, body.Points...)
		status := "ok"
		if idx < len(f.statuses) {
			status = f.statuses[idx]
		}
		f.mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"operation_id": idx, "status": "completed"},
			"status": status,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newQdrant(url string, opts ...vectordb.ProviderOption) *vectordb.Qdrant {
	return vectordb.NewQdrant(vectordb.QdrantConfig{
		APIKey:         testKey,
		ClusterURL:     url + "/",
		Collection:     "docs",
		DistanceMetric: "Dot",
	}, append([]vectordb.ProviderOption{fastClient()}, opts...)...)
}

func TestQdrant_Write_CreatesCollection(t *testing.T) {
	t.Parallel()

	fake := &fakeQdrant{}
	srv := fake.server(t)

	q := newQdrant(srv.URL)
	summary, err := vectordb.NewWriter().Write(context.Background(), q, makeItems(250, 4), 100, "chunk_id")
	require.NoError(t, err)

	assert.Equal(t, []int{100, 100, 50}, fake.batchSizes)
	assert.Equal(t, map[string]any{"vectors": map[string]any{"size": float64(4), "distance": "Dot"}}, fake.created)

	assert.Equal(t, "qdrant", summary.Provider)
	assert.Equal(t, "docs", summary.Target)
	assert.Equal(t, srv.URL, summary.ClusterURL)
	assert.Equal(t, "Dot", summary.DistanceMetric)
	assert.True(t, summary.CollectionCreated)
	assert.Equal(t, 250, summary.TotalUpserted)
	assert.Equal(t, 3, summary.TotalBatches)
	assert.Zero(t, summary.FailedBatches)

	first := fake.points[0]
	assert.Equal(t, "chunk-0", first["id"])
	assert.Equal(t, map[string]any{"text": "text 0"}, first["payload"])
	assert.Len(t, first["vector"], 4)
}

func TestQdrant_Write_ExistingCollection(t *testing.T) {
	t.Parallel()

	fake := &fakeQdrant{exists: true}
	srv := fake.server(t)

	summary, err := vectordb.NewWriter().Write(context.Background(), newQdrant(srv.URL), makeItems(3, 2), 100, "chunk_id")
	require.NoError(t, err)

	assert.Nil(t, fake.created)
	assert.False(t, summary.CollectionCreated)
	assert.Equal(t, 3, summary.TotalUpserted)
	assert.Equal(t, 1, summary.TotalBatches)
}

func TestQdrant_Write_ExistsCheckFailureCreates(t *testing.T) {
	t.Parallel()

	fake := &fakeQdrant{existsFail: true}
	srv := fake.server(t)

	summary, err := vectordb.NewWriter().Write(context.Background(), newQdrant(srv.URL), makeItems(1, 3), 10, "chunk_id")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.existsCalls)
	assert.NotNil(t, fake.created)
	assert.True(t, summary.CollectionCreated)
}

func TestQdrant_Write_NonOKBatchesSkipped(t *testing.T) {
	t.Parallel()

	fake := &fakeQdrant{exists: true, statuses: []string{"ok", "acknowledged", "ok"}}
	srv := fake.server(t)

	var results []vectordb.BatchResult
	w := vectordb.NewWriter(vectordb.WithBatchHook(func(r vectordb.BatchResult) {
		results = append(results, r)
	}))

	summary, err := w.Write(context.Background(), newQdrant(srv.URL), makeItems(25, 2), 10, "chunk_id")
	require.NoError(t, err)

	assert.Equal(t, 15, summary.TotalUpserted)
	assert.Equal(t, 2, summary.TotalBatches)
	assert.Equal(t, 1, summary.FailedBatches)

	require.Len(t, results, 3)
	assert.False(t, results[1].OK)
	assert.Equal(t, "acknowledged", results[1].Status)
	assert.Equal(t, 11, results[1].Start)
	assert.Equal(t, 20, results[1].End)
	assert.Equal(t, 10, results[1].Sent)
	assert.Equal(t, 5, results[2].Sent)
}

func TestQdrant_EnsureTarget_ZeroDimensions(t *testing.T) {
	t.Parallel()

	q := vectordb.NewQdrant(vectordb.QdrantConfig{APIKey: testKey, ClusterURL: "https://x.cloud.qdrant.io", Collection: "docs"})
	err := q.EnsureTarget(context.Background(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, vectordb.ErrConfiguration)
	assert.ErrorIs(t, err, vectordb.ErrZeroDimension)
	assert.Equal(t, "First embedding has zero dimensions. Check that input items have valid 'embedding' arrays.", err.Error())
}

func TestQdrant_Write_NoItems(t *testing.T) {
	t.Parallel()

	q := vectordb.NewQdrant(vectordb.QdrantConfig{APIKey: testKey, ClusterURL: "https://x.cloud.qdrant.io", Collection: "docs"})
	_, err := vectordb.NewWriter().Write(context.Background(), q, nil, 10, "chunk_id")
	assert.ErrorIs(t, err, vectordb.ErrNoRecords)
	assert.ErrorIs(t, err, vectordb.ErrConfiguration)
	assert.EqualError(t, err, "No valid points to upsert.")
}

func TestQdrant_Write_Unauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := vectordb.NewWriter().Write(context.Background(), newQdrant(srv.URL), makeItems(1, 2), 10, "chunk_id")
	require.Error(t, err)
	assert.ErrorIs(t, err, restclient.ErrUnauthorized)
	assert.Equal(t, "Qdrant API key is invalid or expired. Check your key and try again.", err.Error())
}

func TestQdrant_BuildRecord(t *testing.T) {
	t.Parallel()

	q := vectordb.NewQdrant(vectordb.QdrantConfig{Collection: "docs"})
	item := embedding.Item{
		Vector: []float32{1, 2},
		Fields: map[string]any{
			"doc":        "d1",
			"text":       "hello",
			"page":       float64(3),
			"tags":       []any{"a", 1},
			"meta":       map[string]any{"k": "v"},
			"missing":    nil,
			"_summary":   false,
			"index":      7,
			"dimensions": 2,
		},
	}

	rec := q.BuildRecord(item, "doc")
	assert.Equal(t, "d1", rec.ID)
	assert.Equal(t, []float32{1, 2}, rec.Vector)
	assert.Equal(t, map[string]any{
		"text": "hello",
		"page": float64(3),
		"tags": []any{"a", 1},
		"meta": map[string]any{"k": "v"},
	}, rec.Metadata)
}
