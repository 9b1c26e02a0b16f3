package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/vectorwriter/pkg/billing"
	"github.com/dmitrymomot/vectorwriter/pkg/dataset"
	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/logger"
	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
	"github.com/dmitrymomot/vectorwriter/pkg/runinput"
	"github.com/dmitrymomot/vectorwriter/pkg/sink"
	"github.com/dmitrymomot/vectorwriter/pkg/statemachine"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

// Runner executes runs. It is safe for concurrent use; runs share only the
// host cache and sink.
type Runner struct {
	settings   Settings
	log        *slog.Logger
	source     dataset.Source
	hosts      vectordb.HostCache
	sink       sink.Sink
	clientOpts []restclient.Option
	observers  []statemachine.Observer
	onBatch    func(vectordb.BatchResult)
	now        func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithDatasetSource is required for runs that reference a dataset_id.
func WithDatasetSource(src dataset.Source) Option {
	return func(r *Runner) {
		r.source = src
	}
}

// WithHostCache shares resolved Pinecone hosts between runs.
func WithHostCache(c vectordb.HostCache) Option {
	return func(r *Runner) {
		r.hosts = c
	}
}

// WithSink publishes every successful result.
func WithSink(s sink.Sink) Option {
	return func(r *Runner) {
		r.sink = s
	}
}

// WithClientOptions tunes the HTTP client used for provider calls.
func WithClientOptions(opts ...restclient.Option) Option {
	return func(r *Runner) {
		r.clientOpts = append(r.clientOpts, opts...)
	}
}

// WithBatchHook is called after every upsert batch, acknowledged or not.
// It may be called from concurrent runs.
func WithBatchHook(fn func(vectordb.BatchResult)) Option {
	return func(r *Runner) {
		r.onBatch = fn
	}
}

// WithObserver is notified of every lifecycle transition.
func WithObserver(obs statemachine.Observer) Option {
	return func(r *Runner) {
		if obs != nil {
			r.observers = append(r.observers, obs)
		}
	}
}

// New creates a Runner.
func New(settings Settings, opts ...Option) *Runner {
	r := &Runner{
		settings: settings.withDefaults(),
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("runner"))
	return r
}

// Run executes one run for raw input.
func (r *Runner) Run(ctx context.Context, raw map[string]any) (Result, error) {
	sm := newLifecycle(r.log, r.observers...)

	res, err := r.run(ctx, sm, raw)
	if err != nil {
		advance(ctx, sm, r.log, EventFail)
		r.log.ErrorContext(ctx, "run failed",
			slog.String("state", stateBeforeFailure(sm)),
			logger.Error(err),
			slog.String("message", FailureMessage(err, runinput.Secrets(raw)...)),
		)
		return Result{}, err
	}

	res.States = stateNames(sm.History())
	r.publish(ctx, res)
	return res, nil
}

func (r *Runner) run(ctx context.Context, sm *statemachine.Machine, raw map[string]any) (Result, error) {
	req, err := runinput.Validate(raw, r.settings.Limits)
	if err != nil {
		return Result{}, err
	}
	log := r.log.With(slog.Any("request", req))

	start := r.now()

	items, err := r.items(ctx, req, log)
	if err != nil {
		return Result{}, err
	}
	log.InfoContext(ctx, "writing vectors",
		logger.Provider(string(req.Provider)),
		logger.Target(req.IndexName),
		logger.Count(len(items)),
	)

	w := vectordb.NewWriter(
		vectordb.WithLogger(log),
		vectordb.WithBatchHook(r.onBatch),
		vectordb.WithStageHook(func(ctx context.Context, s vectordb.Stage) {
			advance(ctx, sm, log, stageEvents[s])
		}),
	)

	advance(ctx, sm, log, EventValidated)
	summary, err := w.Write(ctx, r.provider(req, log), items, req.BatchSize, req.IDField)
	if err != nil {
		return Result{}, err
	}
	if summary.TotalUpserted == 0 {
		return Result{}, ErrNothingUpserted
	}

	res := Result{
		Summary:        summary,
		Billing:        billing.CalculateWithRate(summary.TotalUpserted, r.settings.RatePerVector),
		ProcessingTime: r.now().Sub(start),
	}
	advance(ctx, sm, log, EventSummarized)

	log.InfoContext(ctx, fmt.Sprintf("Done: %d vectors upserted to %s in %d batches, %.3fs, $%.4f",
		summary.TotalUpserted, summary.Provider, summary.TotalBatches,
		res.ProcessingTime.Seconds(), res.Billing.Amount),
		logger.Duration(res.ProcessingTime),
	)
	return res, nil
}

func (r *Runner) items(ctx context.Context, req runinput.Request, log *slog.Logger) ([]embedding.Item, error) {
	if !req.HasDataset() {
		log.InfoContext(ctx, "mode: raw vectors", logger.Count(len(req.Vectors)))
		return req.Vectors, nil
	}

	log.InfoContext(ctx, "mode: dataset chaining", slog.String("dataset_id", req.DatasetID))
	if r.source == nil {
		return nil, ErrNoDatasetSource
	}
	loaded, err := dataset.Load(ctx, r.source, req.DatasetID,
		dataset.WithLimit(r.settings.DatasetLimit),
		dataset.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return loaded.Items, nil
}

func (r *Runner) provider(req runinput.Request, log *slog.Logger) vectordb.Provider {
	opts := []vectordb.ProviderOption{
		vectordb.WithProviderLogger(log),
		vectordb.WithClientOptions(append([]restclient.Option{restclient.WithLogger(log)}, r.clientOpts...)...),
	}

	if req.Provider == runinput.ProviderQdrant {
		return vectordb.NewQdrant(vectordb.QdrantConfig{
			APIKey:         req.APIKey,
			ClusterURL:     req.ClusterURL,
			Collection:     req.IndexName,
			DistanceMetric: req.DistanceMetric,
		}, opts...)
	}

	if r.hosts != nil {
		opts = append(opts, vectordb.WithHostCache(r.hosts))
	}
	return vectordb.NewPinecone(vectordb.PineconeConfig{
		APIKey:    req.APIKey,
		IndexName: req.IndexName,
		Namespace: req.Namespace,
	}, opts...)
}

func (r *Runner) publish(ctx context.Context, res Result) {
	if r.sink == nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to encode result", logger.Error(err))
		return
	}
	if err := r.sink.Publish(ctx, payload); err != nil {
		r.log.ErrorContext(ctx, "failed to publish result", logger.Error(err))
	}
}

func stateNames(states []statemachine.State) []string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.Name()
	}
	return names
}

// stateBeforeFailure returns the last state visited before failed.
func stateBeforeFailure(sm *statemachine.Machine) string {
	h := sm.History()
	if len(h) < 2 {
		return sm.Current().Name()
	}
	return h[len(h)-2].Name()
}
