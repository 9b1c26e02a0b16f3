package runinput

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/sanitizer"
	"github.com/dmitrymomot/vectorwriter/pkg/validator"
)

var (
	indexNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
	qdrantURLPattern = regexp.MustCompile(`^https://[A-Za-z0-9._-]+\.cloud\.qdrant\.io(:\d+)?$`)
	namespacePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{0,64}$`)
	datasetIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_~-]{0,63}$`)
	fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]{0,63}$`)
)

var (
	clean   = sanitizer.Chain(sanitizer.StripControlChars, sanitizer.Trim)
	printer = message.NewPrinter(language.English)
)

// Input keys.
const (
	FieldProvider       = "provider"
	FieldAPIKey         = "api_key"
	FieldIndexName      = "index_name"
	FieldEnvironment    = "environment"
	FieldNamespace      = "namespace"
	FieldDistanceMetric = "distance_metric"
	FieldDatasetID      = "dataset_id"
	FieldVectors        = "vectors"
	FieldBatchSize      = "batch_size"
	FieldIDField        = "id_field"
)

// Validate checks raw run input and returns the normalized request.
// The returned error is always a *FieldError.
func Validate(raw map[string]any, limits Limits) (Request, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	if limits.MaxVectors <= 0 {
		limits.MaxVectors = DefaultLimits().MaxVectors
	}
	if limits.DefaultBatchSize <= 0 {
		limits.DefaultBatchSize = DefaultLimits().DefaultBatchSize
	}
	if limits.DefaultIDField == "" {
		limits.DefaultIDField = DefaultLimits().DefaultIDField
	}

	in := parse(raw, limits)
	maxBatch := limits.maxBatch(in.provider)

	if fe := validator.First(
		validator.InList(FieldProvider, in.provider, Providers).
			WithMessage("Invalid provider '%s'. Must be one of: pinecone, qdrant.", in.provider),

		validator.Required(FieldAPIKey, in.apiKey).
			WithMessage("API key is required. Provide your Pinecone or Qdrant API key."),

		validator.Required(FieldIndexName, in.indexName).
			WithMessage("Index/collection name is required. Pinecone: your index name. Qdrant: your collection name."),
		validator.Matches(FieldIndexName, in.indexName, indexNamePattern, "index name").
			WithMessage("Invalid index/collection name: '%s'. Must be alphanumeric (with hyphens/underscores), "+
				"1-64 characters, starting with a letter or digit.", in.indexName),

		validator.Condition(FieldEnvironment, in.provider != ProviderQdrant || in.clusterURL != "",
			"Qdrant cluster URL is required. Provide your Qdrant Cloud URL "+
				"(e.g., 'https://xyz.us-east-1.aws.cloud.qdrant.io:6333')."),
		validator.Condition(FieldEnvironment, in.provider != ProviderQdrant || qdrantURLPattern.MatchString(in.clusterURL),
			fmt.Sprintf("Invalid Qdrant cluster URL: '%s'. Must match pattern: https://{cluster}.cloud.qdrant.io:6333",
				in.clusterURL)),

		validator.MatchesIfPresent(FieldNamespace, in.namespace, namespacePattern, "namespace").
			WithMessage("Invalid namespace: '%s'. Must be alphanumeric with hyphens/underscores/dots, max 64 characters.",
				in.namespace),

		validator.InList(FieldDistanceMetric, in.distance, DistanceMetrics).
			WithMessage("Invalid distance metric '%s'. Must be one of: Cosine, Dot, Euclid.", in.distance),

		validator.Condition(FieldDatasetID, in.datasetID != "" || len(in.vectors) > 0,
			"No input provided. Supply either 'dataset_id' (from RAG Embedding Generator output) "+
				"or 'vectors' (raw vector array)."),
		validator.Condition(FieldVectors, in.datasetID == "" || len(in.vectors) == 0,
			"Conflicting input. Supply either 'dataset_id' or 'vectors', not both."),
		validator.MatchesIfPresent(FieldDatasetID, in.datasetID, datasetIDPattern, "dataset id").
			WithMessage("Invalid dataset_id format: '%s'. Must be alphanumeric (with hyphens/underscores), "+
				"1-64 characters.", in.datasetID),

		validator.Condition(FieldVectors, len(in.vectors) <= limits.MaxVectors,
			printer.Sprintf("Too many vectors: %d provided, maximum is %d.", len(in.vectors), limits.MaxVectors)),
		validator.Condition(in.itemErr.Field, in.itemErr.Message == "", in.itemErr.Message),

		validator.Condition(FieldBatchSize, in.batchOK,
			fmt.Sprintf("batch_size must be an integer, got '%v'.", in.batchRaw)),
		validator.Between(FieldBatchSize, in.batchSize, 1, maxBatch).
			WithMessage("batch_size must be between 1 and %d for %s, got %d.", maxBatch, in.provider, in.batchSize),

		validator.Matches(FieldIDField, in.idField, fieldNamePattern, "field name").
			WithMessage("Invalid id_field: '%s'. Must start with a letter or underscore, contain only "+
				"alphanumeric characters, underscores, or dots.", in.idField),
	); fe != nil {
		redact := sanitizer.Redactor(in.rawAPIKey, in.apiKey)
		return Request{}, &FieldError{Field: fe.Field, Message: redact(fe.Message)}
	}

	req := Request{
		Provider:       in.provider,
		APIKey:         in.apiKey,
		IndexName:      in.indexName,
		Namespace:      in.namespace,
		DistanceMetric: in.distance,
		DatasetID:      in.datasetID,
		Vectors:        in.items,
		BatchSize:      in.batchSize,
		IDField:        in.idField,
	}
	if in.provider == ProviderQdrant {
		req.ClusterURL = in.clusterURL
	}
	return req, nil
}

// Secrets returns the api_key of raw as given and as Validate cleans it, for
// redaction. Empty and duplicate values are dropped.
func Secrets(raw map[string]any) []string {
	rawKey := stringOr(raw[FieldAPIKey], "")
	cleaned := clean(rawKey)
	switch {
	case cleaned == "":
		return nil
	case cleaned == rawKey:
		return []string{rawKey}
	default:
		return []string{rawKey, cleaned}
	}
}

type parsed struct {
	provider   Provider
	rawAPIKey  string
	apiKey     string
	indexName  string
	clusterURL string
	namespace  string
	distance   string
	datasetID  string
	vectors    []any
	items      []embedding.Item
	itemErr    validator.Violation
	batchRaw   any
	batchSize  int
	batchOK    bool
	idField    string
}

func parse(raw map[string]any, limits Limits) parsed {
	var p parsed

	p.provider = Provider(sanitizer.TrimToLower(sanitizer.StripControlChars(
		stringOr(raw[FieldProvider], string(ProviderPinecone)))))

	p.rawAPIKey = stringOr(raw[FieldAPIKey], "")
	p.apiKey = clean(p.rawAPIKey)
	p.indexName = clean(stringOr(raw[FieldIndexName], ""))
	p.clusterURL = sanitizer.TrimTrailingSlash(clean(stringOr(raw[FieldEnvironment], "")))
	p.namespace = clean(stringOr(raw[FieldNamespace], ""))
	p.distance = clean(stringOr(raw[FieldDistanceMetric], DistanceCosine))
	p.datasetID = clean(stringOr(raw[FieldDatasetID], ""))
	p.vectors, _ = asList(raw[FieldVectors])

	if p.datasetID == "" && len(p.vectors) > 0 && len(p.vectors) <= limits.MaxVectors {
		p.items, p.itemErr = parseItems(p.vectors)
	}

	p.batchRaw = raw[FieldBatchSize]
	if p.batchRaw == nil {
		p.batchSize, p.batchOK = limits.DefaultBatchSize, true
	} else {
		p.batchSize, p.batchOK = toInt(p.batchRaw)
	}

	p.idField = clean(stringOr(raw[FieldIDField], ""))
	if p.idField == "" {
		p.idField = limits.DefaultIDField
	}

	return p
}

func parseItems(list []any) ([]embedding.Item, validator.Violation) {
	items := make([]embedding.Item, 0, len(list))
	for i, el := range list {
		field := fmt.Sprintf("vectors[%d]", i)
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, validator.Violation{
				Field:   field,
				Message: fmt.Sprintf("vectors[%d] is not an object.", i),
			}
		}
		item, err := embedding.FromMap(obj)
		switch {
		case errors.Is(err, embedding.ErrMissingEmbedding):
			return nil, validator.Violation{
				Field: field,
				Message: fmt.Sprintf("vectors[%d] is missing 'embedding' field. "+
					"Each vector must have an 'embedding' array of floats.", i),
			}
		case err != nil:
			return nil, validator.Violation{
				Field:   field,
				Message: fmt.Sprintf("vectors[%d]['embedding'] must be a non-empty array of numbers.", i),
			}
		}
		items = append(items, item)
	}
	return items, validator.Violation{}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, true
	case []map[string]any:
		out := make([]any, len(list))
		for i, m := range list {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(clean(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
