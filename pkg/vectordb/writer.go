package vectordb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/logger"
)

// DefaultBatchSize is used when a non-positive batch size is given.
const DefaultBatchSize = 100

// Summary is the outcome of a completed write.
type Summary struct {
	Provider      string
	Target        string
	TotalUpserted int
	// TotalBatches counts acknowledged batches only.
	TotalBatches  int
	FailedBatches int

	// Pinecone.
	Namespace string
	Host      string

	// Qdrant.
	ClusterURL        string
	DistanceMetric    string
	CollectionCreated bool
}

// Tally accumulates batch outcomes during Upsert.
type Tally struct {
	TotalUpserted int
	TotalBatches  int
	FailedBatches int
}

func (t *Tally) add(r BatchResult) {
	if r.OK {
		t.TotalUpserted += r.Upserted
		t.TotalBatches++
		return
	}
	t.FailedBatches++
}

// Stage marks a completed step of Write.
type Stage string

// Stages reported to the stage hook, in order.
const (
	StageTargetReady Stage = "target_ready"
	StageBuilt       Stage = "built"
	StageUpserted    Stage = "upserted"
)

// Writer runs providers through a write. It holds no per-run state and may
// be shared when its hooks are safe for concurrent use.
type Writer struct {
	log     *slog.Logger
	onBatch func(BatchResult)
	onStage func(context.Context, Stage)
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the writer logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.log = l
		}
	}
}

// WithBatchHook is called after every batch, acknowledged or not.
func WithBatchHook(fn func(BatchResult)) Option {
	return func(w *Writer) {
		w.onBatch = fn
	}
}

// WithStageHook is called after each completed stage of Write.
func WithStageHook(fn func(context.Context, Stage)) Option {
	return func(w *Writer) {
		w.onStage = fn
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write prepares the target using the first item's dimensions, then builds,
// upserts and summarizes.
func (w *Writer) Write(ctx context.Context, p Provider, items []embedding.Item, batchSize int, idField string) (Summary, error) {
	if len(items) == 0 {
		return Summary{}, &ConfigError{Kind: ErrNoRecords, Message: "No valid points to upsert."}
	}
	if err := p.EnsureTarget(ctx, items[0].Dimensions()); err != nil {
		return Summary{}, err
	}
	w.stage(ctx, StageTargetReady)

	records := w.Build(p, items, idField)
	w.stage(ctx, StageBuilt)

	tally, err := w.Upsert(ctx, p, records, batchSize)
	if err != nil {
		return Summary{}, err
	}
	w.stage(ctx, StageUpserted)

	return Summarize(p, tally), nil
}

func (w *Writer) stage(ctx context.Context, s Stage) {
	if w.onStage != nil {
		w.onStage(ctx, s)
	}
}

// Build converts items into provider records in input order.
func (w *Writer) Build(p Provider, items []embedding.Item, idField string) []Record {
	records := make([]Record, len(items))
	for i, item := range items {
		records[i] = p.BuildRecord(item, idField)
	}
	return records
}

// Upsert sends records in sequential batches of batchSize. It stops at the
// first request error or when ctx is done; unacknowledged batches are
// counted and logged but do not stop the run.
func (w *Writer) Upsert(ctx context.Context, p Provider, records []Record, batchSize int) (Tally, error) {
	var tally Tally
	if len(records) == 0 {
		return tally, &ConfigError{Kind: ErrNoRecords, Message: "No valid points to upsert."}
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	total := len(records)
	batches := (total + batchSize - 1) / batchSize

	for i := range batches {
		if err := ctx.Err(); err != nil {
			return tally, fmt.Errorf("upsert interrupted before batch %d of %d: %w", i+1, batches, err)
		}

		start := i * batchSize
		end := min(start+batchSize, total)

		w.log.InfoContext(ctx, "upserting batch",
			logger.Provider(p.Name()),
			logger.Batch(i+1, batches),
			slog.String("range", fmt.Sprintf("%d-%d of %d", start+1, end, total)),
		)

		res, err := p.UpsertBatch(ctx, records[start:end])
		if err != nil {
			return tally, err
		}
		res.Index, res.Start, res.End, res.Sent = i, start+1, end, end-start

		if !res.OK {
			w.log.WarnContext(ctx, "batch not acknowledged",
				logger.Provider(p.Name()),
				logger.Batch(i+1, batches),
				slog.String("range", fmt.Sprintf("%d-%d", res.Start, res.End)),
				slog.String("provider_status", res.Status),
			)
		}
		tally.add(res)

		if w.onBatch != nil {
			w.onBatch(res)
		}
	}

	return tally, nil
}

// Summarize combines a tally with the provider's target description.
func Summarize(p Provider, t Tally) Summary {
	s := Summary{
		TotalUpserted: t.TotalUpserted,
		TotalBatches:  t.TotalBatches,
		FailedBatches: t.FailedBatches,
	}
	p.Describe(&s)
	return s
}
