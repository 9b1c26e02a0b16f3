package dataset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/logger"
)

// DefaultLimit caps the number of items read from one dataset.
const DefaultLimit = 50_000

// Result is the outcome of a successful Load.
type Result struct {
	Items []embedding.Item
	// Total is the number of items returned by the source.
	Total int
	// SummaryRows were dropped before embedding checks.
	SummaryRows int
	// Skipped items had no usable embedding.
	Skipped int
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	limit int
	log   *slog.Logger
}

// WithLimit overrides DefaultLimit.
func WithLimit(n int) LoadOption {
	return func(o *loadOptions) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithLogger sets the logger for skip warnings.
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// Load reads a dataset and keeps the items that carry a usable embedding.
func Load(ctx context.Context, src Source, datasetID string, opts ...LoadOption) (Result, error) {
	o := loadOptions{limit: DefaultLimit, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := src.Items(ctx, datasetID, o.limit)
	if err != nil {
		o.log.ErrorContext(ctx, "failed to open dataset",
			slog.String("dataset_id", datasetID),
			logger.Error(err),
		)
		return Result{}, &LoadError{
			Kind: ErrDatasetUnavailable,
			Message: fmt.Sprintf("Could not load dataset '%s'. "+
				"Verify the dataset ID exists and this actor has access to it.", datasetID),
			Cause: err,
		}
	}

	if len(raw) == 0 {
		return Result{}, &LoadError{
			Kind:    ErrEmptyDataset,
			Message: fmt.Sprintf("Dataset '%s' is empty or contains no items.", datasetID),
		}
	}

	res := Result{Total: len(raw)}
	candidates := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if item == nil || embedding.IsSummary(item) {
			res.SummaryRows++
			continue
		}
		candidates = append(candidates, item)
	}

	if len(candidates) == 0 {
		return Result{}, &LoadError{
			Kind:    ErrNoUsableItems,
			Message: fmt.Sprintf("Dataset '%s' contains no embedding items (only summary rows found).", datasetID),
		}
	}

	res.Items = make([]embedding.Item, 0, len(candidates))
	for _, raw := range candidates {
		item, err := embedding.FromMap(raw)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Items = append(res.Items, item)
	}

	if len(res.Items) == 0 {
		return Result{}, &LoadError{
			Kind: ErrNoUsableItems,
			Message: fmt.Sprintf("No items with valid 'embedding' arrays found in dataset '%s'. "+
				"Ensure the dataset was produced by RAG Embedding Generator or contains items with 'embedding' fields.",
				datasetID),
		}
	}

	if res.Skipped > 0 {
		o.log.WarnContext(ctx, fmt.Sprintf("Skipped %d items without valid embeddings out of %d total.",
			res.Skipped, len(candidates)),
			slog.String("dataset_id", datasetID),
			slog.Int("skipped", res.Skipped),
		)
	}

	o.log.InfoContext(ctx, "loaded dataset",
		slog.String("dataset_id", datasetID),
		logger.Count(len(res.Items)),
	)

	return res, nil
}
