package embedding_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
)

func TestFromMap(t *testing.T) {
	t.Parallel()

	t.Run("json decoded item", func(t *testing.T) {
		t.Parallel()
		var raw map[string]any
		require.NoError(t, json.Unmarshal([]byte(`{"chunk_id":"c1","text":"hello","embedding":[0.1,-2,3]}`), &raw))

		item, err := embedding.FromMap(raw)
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, -2, 3}, item.Vector)
		assert.Equal(t, 3, item.Dimensions())
		assert.Equal(t, map[string]any{"chunk_id": "c1", "text": "hello"}, item.Fields)
	})

	t.Run("json.Number elements", func(t *testing.T) {
		t.Parallel()
		item, err := embedding.FromMap(map[string]any{
			"embedding": []any{json.Number("1.5"), 2},
		})
		require.NoError(t, err)
		assert.Equal(t, []float32{1.5, 2}, item.Vector)
		assert.Empty(t, item.Fields)
	})

	t.Run("typed slices", func(t *testing.T) {
		t.Parallel()
		item, err := embedding.FromMap(map[string]any{"embedding": []float64{1, 2}})
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, item.Vector)
	})

	tests := []struct {
		name string
		raw  map[string]any
		want error
	}{
		{"missing", map[string]any{"text": "x"}, embedding.ErrMissingEmbedding},
		{"empty", map[string]any{"embedding": []any{}}, embedding.ErrInvalidEmbedding},
		{"not array", map[string]any{"embedding": "0.1,0.2"}, embedding.ErrInvalidEmbedding},
		{"non numeric", map[string]any{"embedding": []any{0.1, "x"}}, embedding.ErrInvalidEmbedding},
		{"bool element", map[string]any{"embedding": []any{true}}, embedding.ErrInvalidEmbedding},
		{"null", map[string]any{"embedding": nil}, embedding.ErrInvalidEmbedding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := embedding.FromMap(tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsSummary(t *testing.T) {
	t.Parallel()

	assert.True(t, embedding.IsSummary(map[string]any{"_summary": true}))
	assert.False(t, embedding.IsSummary(map[string]any{"_summary": false}))
	assert.False(t, embedding.IsSummary(map[string]any{"_summary": "true"}))
	assert.False(t, embedding.IsSummary(map[string]any{}))
}

func TestIsReserved(t *testing.T) {
	t.Parallel()

	for _, k := range []string{"embedding", "_summary", "index", "dimensions"} {
		assert.True(t, embedding.IsReserved(k), k)
	}
	assert.False(t, embedding.IsReserved("chunk_id"))
}
