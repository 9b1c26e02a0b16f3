package vectordb

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/logger"
	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
)

const qdrantStatusOK = "ok"

// QdrantConfig describes one Qdrant Cloud collection.
type QdrantConfig struct {
	APIKey string
	// ClusterURL is the validated cluster base URL without a trailing slash.
	ClusterURL     string
	Collection     string
	DistanceMetric string
}

// Qdrant writes points to a Qdrant collection, creating it when missing.
type Qdrant struct {
	cfg     QdrantConfig
	client  *restclient.Client
	log     *slog.Logger
	created bool
}

var _ Provider = (*Qdrant)(nil)

// NewQdrant returns a Qdrant provider. DistanceMetric defaults to Cosine.
func NewQdrant(cfg QdrantConfig, opts ...ProviderOption) *Qdrant {
	o := newProviderOptions(opts)
	cfg.ClusterURL = strings.TrimRight(cfg.ClusterURL, "/")
	if cfg.DistanceMetric == "" {
		cfg.DistanceMetric = "Cosine"
	}

	return &Qdrant{
		cfg:    cfg,
		client: restclient.New(append(o.clientOpts, restclient.WithService("Qdrant"))...),
		log:    o.log,
	}
}

func (q *Qdrant) Name() string { return NameQdrant }

// Created reports whether EnsureTarget created the collection.
func (q *Qdrant) Created() bool { return q.created }

func (q *Qdrant) headers() map[string]string {
	return map[string]string{"api-key": q.cfg.APIKey}
}

func (q *Qdrant) collectionURL() string {
	return q.cfg.ClusterURL + "/collections/" + url.PathEscape(q.cfg.Collection)
}

// EnsureTarget creates the collection with the given vector size unless it
// already exists. A failed existence check falls through to creation.
func (q *Qdrant) EnsureTarget(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return &ConfigError{
			Kind: ErrZeroDimension,
			Message: "First embedding has zero dimensions. " +
				"Check that input items have valid 'embedding' arrays.",
		}
	}

	var exists struct {
		Result struct {
			Exists bool `json:"exists"`
		} `json:"result"`
	}
	err := q.client.Do(ctx, restclient.Request{
		Method:  http.MethodGet,
		URL:     q.collectionURL() + "/exists",
		Headers: q.headers(),
		Secret:  q.cfg.APIKey,
	}, &exists)
	switch {
	case err == nil && exists.Result.Exists:
		q.log.InfoContext(ctx, "qdrant collection already exists", logger.Target(q.cfg.Collection))
		return nil
	case err != nil:
		if ctx.Err() != nil {
			return err
		}
		q.log.WarnContext(ctx, "qdrant collection existence check failed, creating anyway",
			logger.Target(q.cfg.Collection),
			logger.Error(err),
		)
	}

	q.log.InfoContext(ctx, "creating qdrant collection",
		logger.Target(q.cfg.Collection),
		slog.Int("size", dimensions),
		slog.String("distance", q.cfg.DistanceMetric),
	)

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimensions,
			"distance": q.cfg.DistanceMetric,
		},
	}
	if err := q.client.Do(ctx, restclient.Request{
		Method:  http.MethodPut,
		URL:     q.collectionURL(),
		Headers: q.headers(),
		Body:    body,
		Secret:  q.cfg.APIKey,
	}, nil); err != nil {
		return err
	}

	q.created = true
	q.log.InfoContext(ctx, "qdrant collection created", logger.Target(q.cfg.Collection))
	return nil
}

type qdrantPoint struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

type qdrantUpsertRequest struct {
	Points []qdrantPoint `json:"points"`
}

type qdrantUpsertResponse struct {
	Status json.RawMessage `json:"status"`
}

// BuildRecord keeps every JSON value except null.
func (q *Qdrant) BuildRecord(item embedding.Item, idField string) Record {
	return Record{
		ID:       recordID(item, idField),
		Vector:   item.Vector,
		Metadata: buildMetadata(item, idField, qdrantPayloadValue),
	}
}

func qdrantPayloadValue(v any) bool {
	if isScalar(v) {
		return true
	}
	switch v.(type) {
	case []any, []string, []float64, []int, map[string]any:
		return true
	default:
		return false
	}
}

// UpsertBatch puts one batch of points. A non "ok" status is reported in the
// result, not as an error.
func (q *Qdrant) UpsertBatch(ctx context.Context, batch []Record) (BatchResult, error) {
	body := qdrantUpsertRequest{Points: make([]qdrantPoint, len(batch))}
	for i, r := range batch {
		body.Points[i] = qdrantPoint{ID: r.ID, Vector: r.Vector, Payload: r.Metadata}
	}

	var resp qdrantUpsertResponse
	if err := q.client.Do(ctx, restclient.Request{
		Method:  http.MethodPut,
		URL:     q.collectionURL() + "/points",
		Headers: q.headers(),
		Body:    body,
		Secret:  q.cfg.APIKey,
	}, &resp); err != nil {
		return BatchResult{}, err
	}

	status := statusString(resp.Status)
	if status != qdrantStatusOK {
		return BatchResult{Status: status}, nil
	}
	return BatchResult{Upserted: len(batch), OK: true, Status: status}, nil
}

// statusString returns a string status as-is and any other JSON compacted.
func statusString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Describe sets collection, cluster URL, metric and creation flag.
func (q *Qdrant) Describe(s *Summary) {
	s.Provider = NameQdrant
	s.Target = q.cfg.Collection
	s.ClusterURL = q.cfg.ClusterURL
	s.DistanceMetric = q.cfg.DistanceMetric
	s.CollectionCreated = q.created
}
