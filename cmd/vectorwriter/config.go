package main

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/vectorwriter/pkg/httpserver"
	"github.com/dmitrymomot/vectorwriter/pkg/redis"
	"github.com/dmitrymomot/vectorwriter/pkg/s3client"
)

// Dataset source kinds.
const (
	sourceApify = "apify"
	sourceS3    = "s3"
	sourceDir   = "dir"
)

// Summary sink kinds.
const (
	sinkStdout  = "stdout"
	sinkFile    = "file"
	sinkS3      = "s3"
	sinkWebhook = "webhook"
)

// Config is the process configuration read from the environment.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	RetryAttempts  int           `env:"VECTORWRITER_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"VECTORWRITER_RETRY_INTERVAL" envDefault:"1s"`
	RequestTimeout time.Duration `env:"VECTORWRITER_REQUEST_TIMEOUT" envDefault:"60s"`

	RatePerVector float64 `env:"VECTORWRITER_RATE_PER_VECTOR" envDefault:"0.0004"`

	DatasetSource   string `env:"VECTORWRITER_DATASET_SOURCE" envDefault:"apify"` // apify, s3 or dir
	DatasetLimit    int    `env:"VECTORWRITER_DATASET_LIMIT" envDefault:"50000"`
	DatasetDir      string `env:"VECTORWRITER_DATASET_DIR" envDefault:"."`
	DatasetPrefix   string `env:"VECTORWRITER_DATASET_PREFIX" envDefault:"datasets"`
	DatasetMaxBytes int64  `env:"VECTORWRITER_DATASET_MAX_BYTES" envDefault:"268435456"`

	ApifyToken   string `env:"APIFY_TOKEN"`
	ApifyBaseURL string `env:"APIFY_API_BASE_URL" envDefault:"https://api.apify.com"`

	Sinks         []string `env:"VECTORWRITER_SINKS" envSeparator:","` // stdout, file, s3, webhook
	SinkFile      string   `env:"VECTORWRITER_SINK_FILE" envDefault:"runs.jsonl"`
	SinkPrefix    string   `env:"VECTORWRITER_SINK_PREFIX" envDefault:"runs"`
	WebhookURL    string   `env:"VECTORWRITER_WEBHOOK_URL"`
	WebhookSecret string   `env:"VECTORWRITER_WEBHOOK_SECRET"`

	HostCacheSize int           `env:"VECTORWRITER_HOST_CACHE_SIZE" envDefault:"256"`
	HostCacheTTL  time.Duration `env:"VECTORWRITER_HOST_CACHE_TTL" envDefault:"1h"`

	S3    s3client.Config `envPrefix:"VECTORWRITER_S3_"`
	Redis redis.Config
	HTTP  httpserver.Config
}

// Validate rejects unknown source and sink names before anything connects.
func (c *Config) Validate() error {
	switch c.DatasetSource {
	case sourceApify, sourceS3, sourceDir:
	default:
		return fmt.Errorf("%w: %q", errUnknownSource, c.DatasetSource)
	}
	for _, s := range c.Sinks {
		switch s {
		case sinkStdout, sinkFile, sinkS3, sinkWebhook:
		default:
			return fmt.Errorf("%w: %q", errUnknownSink, s)
		}
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("VECTORWRITER_RETRY_ATTEMPTS must be at least 1, got %d", c.RetryAttempts)
	}
	return nil
}
