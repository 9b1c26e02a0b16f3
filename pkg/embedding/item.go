package embedding

import (
	"encoding/json"
	"fmt"
	"math"
)

// Well-known item keys.
const (
	KeyEmbedding  = "embedding"
	KeySummary    = "_summary"
	KeyIndex      = "index"
	KeyDimensions = "dimensions"
)

// ReservedKeys are never copied into provider metadata.
var ReservedKeys = map[string]struct{}{
	KeyEmbedding:  {},
	KeySummary:    {},
	KeyIndex:      {},
	KeyDimensions: {},
}

// IsReserved reports whether key is in ReservedKeys.
func IsReserved(key string) bool {
	_, ok := ReservedKeys[key]
	return ok
}

// Item is one embedding with its accompanying fields.
type Item struct {
	Vector []float32
	// Fields holds every input key except "embedding".
	Fields map[string]any
}

// Dimensions returns the vector length.
func (it Item) Dimensions() int {
	return len(it.Vector)
}

// FromMap converts a decoded JSON object into an Item.
func FromMap(raw map[string]any) (Item, error) {
	v, ok := raw[KeyEmbedding]
	if !ok {
		return Item{}, ErrMissingEmbedding
	}

	vec, err := ParseVector(v)
	if err != nil {
		return Item{}, err
	}

	fields := make(map[string]any, len(raw))
	for k, val := range raw {
		if k != KeyEmbedding {
			fields[k] = val
		}
	}

	return Item{Vector: vec, Fields: fields}, nil
}

// IsSummary reports whether raw is a summary row written by an upstream run.
func IsSummary(raw map[string]any) bool {
	flag, _ := raw[KeySummary].(bool)
	return flag
}

// ParseVector accepts []any of JSON numbers as produced by encoding/json,
// YAML or map literals, as well as typed float slices.
func ParseVector(v any) ([]float32, error) {
	switch vec := v.(type) {
	case []float32:
		if len(vec) == 0 {
			return nil, ErrInvalidEmbedding
		}
		return vec, nil
	case []float64:
		if len(vec) == 0 {
			return nil, ErrInvalidEmbedding
		}
		out := make([]float32, len(vec))
		for i, f := range vec {
			out[i] = float32(f)
		}
		return out, nil
	case []any:
		if len(vec) == 0 {
			return nil, ErrInvalidEmbedding
		}
		out := make([]float32, len(vec))
		for i, el := range vec {
			f, ok := toFloat(el)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", ErrInvalidEmbedding, i, el)
			}
			out[i] = float32(f)
		}
		return out, nil
	default:
		return nil, ErrInvalidEmbedding
	}
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
