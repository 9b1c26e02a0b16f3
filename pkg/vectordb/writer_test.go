package vectordb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

type stubProvider struct {
	ensured   int
	batches   [][]vectordb.Record
	failAt    int
	onUpsert  func(n int)
	ensureErr error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) EnsureTarget(_ context.Context, dims int) error {
	s.ensured = dims
	return s.ensureErr
}

func (s *stubProvider) BuildRecord(item embedding.Item, _ string) vectordb.Record {
	return vectordb.Record{ID: item.Fields["chunk_id"].(string), Vector: item.Vector}
}

func (s *stubProvider) UpsertBatch(_ context.Context, batch []vectordb.Record) (vectordb.BatchResult, error) {
	s.batches = append(s.batches, batch)
	if s.onUpsert != nil {
		s.onUpsert(len(s.batches))
	}
	if s.failAt > 0 && len(s.batches) == s.failAt {
		return vectordb.BatchResult{}, errors.New("boom")
	}
	return vectordb.BatchResult{Upserted: len(batch), OK: true}, nil
}

func (s *stubProvider) Describe(sum *vectordb.Summary) {
	sum.Provider = "stub"
	sum.Target = "t"
}

func TestWriter_BatchCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		items, batch int
		want         []int
	}{
		{250, 100, []int{100, 100, 50}},
		{100, 100, []int{100}},
		{1, 100, []int{1}},
		{7, 3, []int{3, 3, 1}},
		{10, 1, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{5, 0, []int{5}},
	}
	for _, tt := range tests {
		p := &stubProvider{}
		summary, err := vectordb.NewWriter().Write(context.Background(), p, makeItems(tt.items, 2), tt.batch, "chunk_id")
		require.NoError(t, err)

		sizes := make([]int, len(p.batches))
		for i, b := range p.batches {
			sizes[i] = len(b)
		}
		assert.Equal(t, tt.want, sizes)
		assert.Equal(t, tt.items, summary.TotalUpserted)
		assert.Equal(t, len(tt.want), summary.TotalBatches)
		assert.Equal(t, 2, p.ensured)
	}
}

func TestWriter_PreservesOrder(t *testing.T) {
	t.Parallel()

	p := &stubProvider{}
	_, err := vectordb.NewWriter().Write(context.Background(), p, makeItems(5, 1), 2, "chunk_id")
	require.NoError(t, err)

	var ids []string
	for _, b := range p.batches {
		for _, r := range b {
			ids = append(ids, r.ID)
		}
	}
	assert.Equal(t, []string{"chunk-0", "chunk-1", "chunk-2", "chunk-3", "chunk-4"}, ids)
}

func TestWriter_StopsOnError(t *testing.T) {
	t.Parallel()

	p := &stubProvider{failAt: 2}
	_, err := vectordb.NewWriter().Write(context.Background(), p, makeItems(10, 1), 3, "chunk_id")
	require.EqualError(t, err, "boom")
	assert.Len(t, p.batches, 2)
}

func TestWriter_EnsureTargetError(t *testing.T) {
	t.Parallel()

	p := &stubProvider{ensureErr: errors.New("no index")}
	_, err := vectordb.NewWriter().Write(context.Background(), p, makeItems(3, 1), 3, "chunk_id")
	require.EqualError(t, err, "no index")
	assert.Empty(t, p.batches)
}

func TestWriter_StageHook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider *stubProvider
		wantErr  bool
		want     []vectordb.Stage
	}{
		{
			name:     "success",
			provider: &stubProvider{},
			want:     []vectordb.Stage{vectordb.StageTargetReady, vectordb.StageBuilt, vectordb.StageUpserted},
		},
		{
			name:     "ensure target fails",
			provider: &stubProvider{ensureErr: errors.New("no index")},
			wantErr:  true,
		},
		{
			name:     "upsert fails",
			provider: &stubProvider{failAt: 1},
			wantErr:  true,
			want:     []vectordb.Stage{vectordb.StageTargetReady, vectordb.StageBuilt},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []vectordb.Stage
			var batchesAtUpserted int
			w := vectordb.NewWriter(vectordb.WithStageHook(func(_ context.Context, s vectordb.Stage) {
				got = append(got, s)
				if s == vectordb.StageUpserted {
					batchesAtUpserted = len(tt.provider.batches)
				}
			}))

			_, err := w.Write(context.Background(), tt.provider, makeItems(4, 1), 2, "chunk_id")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 2, batchesAtUpserted)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_ContextCancelledBetweenBatches(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &stubProvider{onUpsert: func(n int) {
		if n == 2 {
			cancel()
		}
	}}

	w := vectordb.NewWriter()
	records := w.Build(p, makeItems(10, 1), "chunk_id")
	tally, err := w.Upsert(ctx, p, records, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, p.batches, 2)
	assert.Equal(t, 4, tally.TotalUpserted)
	assert.Equal(t, 2, tally.TotalBatches)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := vectordb.Summarize(&stubProvider{}, vectordb.Tally{TotalUpserted: 9, TotalBatches: 3, FailedBatches: 1})
	assert.Equal(t, vectordb.Summary{
		Provider:      "stub",
		Target:        "t",
		TotalUpserted: 9,
		TotalBatches:  3,
		FailedBatches: 1,
	}, s)
}
