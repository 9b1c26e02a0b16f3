package vectordb_test

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/vectorwriter/pkg/embedding"
	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

const testKey = "pcsk_test_abcdef0123456789"

func fastClient() vectordb.ProviderOption {
	return vectordb.WithClientOptions(
		restclient.WithBackoff(restclient.FixedBackoff{Interval: time.Millisecond}),
	)
}

// controlPlane sends requests for the Pinecone control plane host to the
// server at rawURL. Other hosts are left alone.
func controlPlane(rawURL string) vectordb.ProviderOption {
	target, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	return vectordb.WithClientOptions(restclient.WithHTTPClient(&http.Client{
		Transport: hostRewrite{from: "api.pinecone.io", to: target},
	}))
}

type hostRewrite struct {
	from string
	to   *url.URL
}

func (h hostRewrite) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.URL.Host == h.from {
		r = r.Clone(r.Context())
		r.URL.Scheme, r.URL.Host, r.Host = h.to.Scheme, h.to.Host, h.to.Host
	}
	return http.DefaultTransport.RoundTrip(r)
}

func makeItems(n, dims int) []embedding.Item {
	items := make([]embedding.Item, n)
	for i := range items {
		vec := make([]float32, dims)
		for d := range vec {
			vec[d] = float32(i+d) / 10
		}
		items[i] = embedding.Item{
			Vector: vec,
			Fields: map[string]any{
				"chunk_id": fmt.Sprintf("chunk-%d", i),
				"text":     fmt.Sprintf("text %d", i),
			},
		}
	}
	return items
}
