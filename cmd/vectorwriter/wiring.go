package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dmitrymomot/vectorwriter/pkg/dataset"
	"github.com/dmitrymomot/vectorwriter/pkg/httpserver"
	"github.com/dmitrymomot/vectorwriter/pkg/logger"
	"github.com/dmitrymomot/vectorwriter/pkg/redis"
	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
	"github.com/dmitrymomot/vectorwriter/pkg/runapi"
	"github.com/dmitrymomot/vectorwriter/pkg/runinput"
	"github.com/dmitrymomot/vectorwriter/pkg/runner"
	"github.com/dmitrymomot/vectorwriter/pkg/s3client"
	"github.com/dmitrymomot/vectorwriter/pkg/sanitizer"
	"github.com/dmitrymomot/vectorwriter/pkg/sink"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

var (
	errUnknownSource = errors.New("unknown dataset source")
	errUnknownSink   = errors.New("unknown sink")
	errMissingS3     = errors.New("S3 bucket is not configured")
	errMissingHook   = errors.New("webhook URL is not configured")
)

// newLogger builds the process logger. Records go to stderr so stdout only
// carries run output. Every listed secret is redacted from records.
func newLogger(cfg Config, secrets ...string) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	all := append([]string{cfg.ApifyToken, cfg.WebhookSecret, cfg.S3.SecretKey}, secrets...)
	return logger.New(
		logger.WithEnvironment(cfg.AppEnv, "vectorwriter"),
		logger.WithLevel(level),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(runapi.LoggerExtractor()),
		logger.WithRedaction(sanitizer.Redactor(all...)),
	), nil
}

// deps holds the long lived clients shared by runs.
type deps struct {
	s3    s3client.API
	redis *redis.Storage
	http  *http.Client
	close func()
}

func (a *app) connect(ctx context.Context, log *slog.Logger) (*deps, error) {
	cfg := a.cfg
	d := &deps{http: a.http, close: func() {}}

	if needsS3(cfg) {
		if cfg.S3.Bucket == "" {
			return nil, errMissingS3
		}
		client, err := s3client.New(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		d.s3 = client
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		d.redis = redis.NewStorage(client, cfg.Redis.KeyPrefix)
		d.close = func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close redis client", logger.Error(err))
			}
		}
	}

	return d, nil
}

func needsS3(cfg Config) bool {
	if cfg.DatasetSource == sourceS3 {
		return true
	}
	for _, s := range cfg.Sinks {
		if s == sinkS3 {
			return true
		}
	}
	return false
}

func clientOptions(cfg Config, d *deps) []restclient.Option {
	return []restclient.Option{
		restclient.WithMaxAttempts(cfg.RetryAttempts),
		restclient.WithTimeout(cfg.RequestTimeout),
		restclient.WithBackoff(restclient.ExponentialBackoff{Base: cfg.RetryInterval, Max: time.Minute}),
		restclient.WithUserAgent("vectorwriter/" + version),
		restclient.WithHTTPClient(d.http),
	}
}

func buildSource(cfg Config, d *deps, log *slog.Logger) (dataset.Source, error) {
	switch cfg.DatasetSource {
	case sourceApify, "":
		opts := append(clientOptions(cfg, d), restclient.WithLogger(log))
		return dataset.NewApifySource(cfg.ApifyBaseURL, cfg.ApifyToken, cfg.DatasetMaxBytes, opts...), nil
	case sourceS3:
		if d.s3 == nil {
			return nil, errMissingS3
		}
		return dataset.NewS3Source(d.s3, cfg.S3.Bucket, cfg.DatasetPrefix, cfg.DatasetMaxBytes), nil
	case sourceDir:
		return dataset.NewDirSource(cfg.DatasetDir), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSource, cfg.DatasetSource)
	}
}

// buildSinks returns nil when no sink is configured. The returned close func
// releases opened files.
func buildSinks(cfg Config, d *deps, log *slog.Logger) (sink.Sink, func(), error) {
	var (
		sinks   []sink.Sink
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, name := range cfg.Sinks {
		switch name {
		case sinkStdout:
			sinks = append(sinks, sink.NewWriterSink(os.Stdout))
		case sinkFile:
			f, err := os.OpenFile(cfg.SinkFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("failed to open sink file: %w", err)
			}
			closers = append(closers, func() { _ = f.Close() })
			sinks = append(sinks, sink.NewWriterSink(f))
		case sinkS3:
			if d.s3 == nil {
				closeAll()
				return nil, nil, errMissingS3
			}
			sinks = append(sinks, sink.NewS3Sink(d.s3, cfg.S3.Bucket, cfg.SinkPrefix))
		case sinkWebhook:
			if cfg.WebhookURL == "" {
				closeAll()
				return nil, nil, errMissingHook
			}
			opts := append(clientOptions(cfg, d), restclient.WithLogger(log))
			sinks = append(sinks, sink.NewWebhookSink(cfg.WebhookURL, cfg.WebhookSecret, opts...))
		case "":
		default:
			closeAll()
			return nil, nil, fmt.Errorf("%w: %q", errUnknownSink, name)
		}
	}

	switch len(sinks) {
	case 0:
		return nil, closeAll, nil
	case 1:
		return sinks[0], closeAll, nil
	default:
		return sink.Multi(sinks...), closeAll, nil
	}
}

func buildHostCache(cfg Config, d *deps) vectordb.HostCache {
	if d.redis != nil {
		return vectordb.NewRedisHostCache(d.redis, cfg.HostCacheTTL)
	}
	return vectordb.NewMemoryHostCache(cfg.HostCacheSize, cfg.HostCacheTTL)
}

func settings(cfg Config) runner.Settings {
	s := runner.DefaultSettings()
	s.DatasetLimit = cfg.DatasetLimit
	s.RatePerVector = cfg.RatePerVector
	s.Limits = runinput.DefaultLimits()
	return s
}

func buildRunner(cfg Config, d *deps, log *slog.Logger, out sink.Sink) (*runner.Runner, error) {
	src, err := buildSource(cfg, d, log)
	if err != nil {
		return nil, err
	}
	opts := []runner.Option{
		runner.WithLogger(log),
		runner.WithDatasetSource(src),
		runner.WithHostCache(buildHostCache(cfg, d)),
		runner.WithClientOptions(clientOptions(cfg, d)...),
	}
	if out != nil {
		opts = append(opts, runner.WithSink(out))
	}
	return runner.New(settings(cfg), opts...), nil
}

func readinessChecks(d *deps) []httpserver.Check {
	if d.redis == nil {
		return nil
	}
	return []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(d.redis.Conn())}}
}
