package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
	"github.com/dmitrymomot/vectorwriter/pkg/s3client"
)

// Sink receives a run result as JSON.
type Sink interface {
	Publish(ctx context.Context, payload []byte) error
}

// Func adapts a function to Sink.
type Func func(ctx context.Context, payload []byte) error

func (f Func) Publish(ctx context.Context, payload []byte) error {
	return f(ctx, payload)
}

func check(payload []byte) error {
	if len(payload) == 0 {
		return ErrEmptyPayload
	}
	if !json.Valid(payload) {
		return ErrInvalidJSON
	}
	return nil
}

// WriterSink writes one payload per line.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Publish(_ context.Context, payload []byte) error {
	if err := check(payload); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	line := make([]byte, 0, len(payload)+1)
	line = append(append(line, payload...), '\n')
	if _, err := s.w.Write(line); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// S3Sink stores each payload under {prefix}/{timestamp}-{uuid}.json.
type S3Sink struct {
	client s3client.Putter
	bucket string
	prefix string
	now    func() time.Time
}

func NewS3Sink(client s3client.Putter, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

func (s *S3Sink) Publish(ctx context.Context, payload []byte) error {
	if err := check(payload); err != nil {
		return err
	}
	key := s3client.JoinKey(s.prefix, fmt.Sprintf("%s-%s.json", s.now().UTC().Format("20060102T150405Z"), uuid.NewString()))
	return s3client.WriteObject(ctx, s.client, s.bucket, key, payload, "application/json")
}

// WebhookSink POSTs payloads to a URL.
type WebhookSink struct {
	url    string
	secret string
	client *restclient.Client
}

// NewWebhookSink signs requests with secret when it is non-empty.
func NewWebhookSink(url, secret string, opts ...restclient.Option) *WebhookSink {
	return &WebhookSink{
		url:    url,
		secret: secret,
		client: restclient.New(append(opts, restclient.WithService("Webhook"))...),
	}
}

func (s *WebhookSink) Publish(ctx context.Context, payload []byte) error {
	if err := check(payload); err != nil {
		return err
	}
	return s.client.Do(ctx, restclient.Request{
		Method:        http.MethodPost,
		URL:           s.url,
		Body:          json.RawMessage(payload),
		Secret:        s.secret,
		SigningSecret: s.secret,
		Accept:        []int{http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent},
	}, nil)
}

type multi []Sink

// Multi publishes to every sink in order and joins their errors. Nil sinks
// are ignored.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m multi) Publish(ctx context.Context, payload []byte) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
