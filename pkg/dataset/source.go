package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
	"github.com/dmitrymomot/vectorwriter/pkg/s3client"
)

// Source returns raw dataset items in stored order.
type Source interface {
	Items(ctx context.Context, datasetID string, limit int) ([]map[string]any, error)
}

// ApifyAPI is the public Apify API base URL.
const ApifyAPI = "https://api.apify.com"

// ApifySource reads items through the Apify dataset API.
type ApifySource struct {
	baseURL  string
	token    string
	maxBytes int64
	client   *restclient.Client
}

// NewApifySource returns a source authenticated with token. An empty baseURL
// means ApifyAPI. Item listings larger than maxBytes are rejected; a
// non-positive maxBytes means restclient.DefaultMaxResponseBytes.
func NewApifySource(baseURL, token string, maxBytes int64, opts ...restclient.Option) *ApifySource {
	if baseURL == "" {
		baseURL = ApifyAPI
	}
	return &ApifySource{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		maxBytes: maxBytes,
		client:   restclient.New(append(opts, restclient.WithService("Apify"))...),
	}
}

func (s *ApifySource) Items(ctx context.Context, datasetID string, limit int) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("clean", "true")
	q.Set("format", "json")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	headers := map[string]string{}
	if s.token != "" {
		headers["Authorization"] = "Bearer " + s.token
	}

	var items []map[string]any
	err := s.client.Do(ctx, restclient.Request{
		Method:           http.MethodGet,
		URL:              s.baseURL + "/v2/datasets/" + url.PathEscape(datasetID) + "/items?" + q.Encode(),
		Headers:          headers,
		Secret:           s.token,
		MaxResponseBytes: s.maxBytes,
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// S3Source reads {prefix}/{id}.json objects.
type S3Source struct {
	client   s3client.Getter
	bucket   string
	prefix   string
	maxBytes int64
}

// NewS3Source returns a source for bucket. Objects larger than maxBytes are
// rejected when maxBytes is positive.
func NewS3Source(client s3client.Getter, bucket, prefix string, maxBytes int64) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix, maxBytes: maxBytes}
}

func (s *S3Source) Items(ctx context.Context, datasetID string, limit int) ([]map[string]any, error) {
	key := s3client.JoinKey(s.prefix, datasetID+".json")
	data, err := s3client.ReadObject(ctx, s.client, s.bucket, key, s.maxBytes)
	if err != nil {
		return nil, err
	}
	return decodeItems(data, limit)
}

// DirSource reads {dir}/{id}.json files.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Items(_ context.Context, datasetID string, limit int) ([]map[string]any, error) {
	name := datasetID + ".json"
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: dataset id %q is not a plain name", ErrInvalidFormat, datasetID)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("dataset file %s not found: %w", name, err)
		}
		return nil, err
	}
	return decodeItems(data, limit)
}
