package embedding

import "errors"

var (
	// ErrMissingEmbedding is returned when an item has no "embedding" key.
	ErrMissingEmbedding = errors.New("missing embedding")
	// ErrInvalidEmbedding is returned when "embedding" is not a non-empty array of numbers.
	ErrInvalidEmbedding = errors.New("embedding must be a non-empty array of numbers")
)
