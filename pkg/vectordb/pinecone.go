package vectordb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/logger"
	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
)

const (
	// PineconeControlPlane is the only host used to resolve index hosts.
	PineconeControlPlane = "https://api.pinecone.io"
	pineconeAPIVersion   = "2024-07"
	defaultNamespace     = "(default)"
)

// PineconeConfig describes one Pinecone index.
type PineconeConfig struct {
	APIKey    string
	IndexName string
	// Namespace may be empty for the default namespace.
	Namespace string
}

// Pinecone writes to a Pinecone serverless or pod index.
type Pinecone struct {
	cfg    PineconeConfig
	client *restclient.Client
	cache  HostCache
	log    *slog.Logger
	host   string
}

var _ Provider = (*Pinecone)(nil)

// NewPinecone returns a Pinecone provider. No request is made until EnsureTarget.
func NewPinecone(cfg PineconeConfig, opts ...ProviderOption) *Pinecone {
	o := newProviderOptions(opts)
	return &Pinecone{
		cfg:    cfg,
		client: restclient.New(append(o.clientOpts, restclient.WithService("Pinecone"))...),
		cache:  o.cache,
		log:    o.log,
	}
}

func (p *Pinecone) Name() string { return NamePinecone }

// Host returns the resolved data plane base URL, empty before EnsureTarget.
func (p *Pinecone) Host() string { return p.host }

func (p *Pinecone) headers() map[string]string {
	return map[string]string{
		"Api-Key":                p.cfg.APIKey,
		"X-Pinecone-Api-Version": pineconeAPIVersion,
	}
}

// EnsureTarget resolves the index data plane host. Pinecone indexes are
// never created, so dimensions is ignored.
func (p *Pinecone) EnsureTarget(ctx context.Context, _ int) error {
	if p.host != "" {
		return nil
	}

	key := HostCacheKey(p.cfg.APIKey, p.cfg.IndexName)
	if p.cache != nil {
		host, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			p.log.WarnContext(ctx, "host cache lookup failed",
				logger.Provider(NamePinecone),
				logger.Target(p.cfg.IndexName),
				logger.Error(err),
			)
		}
		if ok && host != "" {
			p.host = host
			p.log.DebugContext(ctx, "pinecone host cache hit",
				logger.Target(p.cfg.IndexName),
				slog.String("host", host),
			)
			return nil
		}
	}

	var resp struct {
		Host string `json:"host"`
	}
	err := p.client.Do(ctx, restclient.Request{
		Method:  http.MethodGet,
		URL:     PineconeControlPlane + "/indexes/" + url.PathEscape(p.cfg.IndexName),
		Headers: p.headers(),
		Secret:  p.cfg.APIKey,
	}, &resp)
	if err != nil {
		return err
	}

	host := strings.TrimSpace(resp.Host)
	if host == "" {
		return &ConfigError{
			Kind: ErrIndexNotFound,
			Message: fmt.Sprintf("Could not resolve host for Pinecone index '%s'. "+
				"Verify the index exists in your Pinecone project.", p.cfg.IndexName),
		}
	}
	if !strings.HasPrefix(host, "https://") && !strings.HasPrefix(host, "http://") {
		host = "https://" + host
	}
	p.host = strings.TrimRight(host, "/")

	p.log.InfoContext(ctx, "resolved pinecone index host",
		logger.Target(p.cfg.IndexName),
		slog.String("host", p.host),
	)

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, p.host); err != nil {
			p.log.WarnContext(ctx, "host cache store failed",
				logger.Provider(NamePinecone),
				logger.Target(p.cfg.IndexName),
				logger.Error(err),
			)
		}
	}
	return nil
}

type pineconeVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata"`
}

type pineconeUpsertRequest struct {
	Vectors   []pineconeVector `json:"vectors"`
	Namespace string           `json:"namespace,omitempty"`
}

type pineconeUpsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

// BuildRecord keeps scalar metadata and lists made only of strings.
func (p *Pinecone) BuildRecord(item embedding.Item, idField string) Record {
	return Record{
		ID:       recordID(item, idField),
		Vector:   item.Vector,
		Metadata: buildMetadata(item, idField, pineconeMetadataValue),
	}
}

func pineconeMetadataValue(v any) bool {
	if isScalar(v) {
		return true
	}
	switch list := v.(type) {
	case []string:
		return true
	case []any:
		for _, el := range list {
			if _, ok := el.(string); !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// UpsertBatch posts one batch to the data plane.
func (p *Pinecone) UpsertBatch(ctx context.Context, batch []Record) (BatchResult, error) {
	if p.host == "" {
		return BatchResult{}, &ConfigError{
			Kind:    ErrIndexNotFound,
			Message: fmt.Sprintf("Pinecone index '%s' host is not resolved.", p.cfg.IndexName),
		}
	}

	body := pineconeUpsertRequest{
		Vectors:   make([]pineconeVector, len(batch)),
		Namespace: p.cfg.Namespace,
	}
	for i, r := range batch {
		body.Vectors[i] = pineconeVector{ID: r.ID, Values: r.Vector, Metadata: r.Metadata}
	}

	var resp pineconeUpsertResponse
	if err := p.client.Do(ctx, restclient.Request{
		Method:  http.MethodPost,
		URL:     p.host + "/vectors/upsert",
		Headers: p.headers(),
		Body:    body,
		Secret:  p.cfg.APIKey,
	}, &resp); err != nil {
		if ctx.Err() == nil {
			p.forgetHost(ctx)
		}
		return BatchResult{}, err
	}

	return BatchResult{Upserted: resp.UpsertedCount, OK: true, Status: "ok"}, nil
}

// forgetHost drops the cached host after a failed upsert so the next run
// describes the index again. A deleted or recreated index otherwise keeps
// failing until the entry expires.
func (p *Pinecone) forgetHost(ctx context.Context) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Delete(ctx, HostCacheKey(p.cfg.APIKey, p.cfg.IndexName)); err != nil {
		p.log.WarnContext(ctx, "host cache delete failed",
			logger.Provider(NamePinecone),
			logger.Target(p.cfg.IndexName),
			logger.Error(err),
		)
	}
}

// Describe sets index, namespace and host.
func (p *Pinecone) Describe(s *Summary) {
	s.Provider = NamePinecone
	s.Target = p.cfg.IndexName
	s.Namespace = p.cfg.Namespace
	if s.Namespace == "" {
		s.Namespace = defaultNamespace
	}
	s.Host = p.host
}
