package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/dmitrymomot/vectorwriter/pkg/logger"
	"github.com/dmitrymomot/vectorwriter/pkg/sanitizer"
)

// DefaultMaxResponseBytes caps accepted response bodies when a Request does
// not set MaxResponseBytes.
const DefaultMaxResponseBytes int64 = 32 << 20

const (
	maxErrorBodyRead = 64 * 1024
	maxBodyInError   = 200
)

// Client sends JSON requests with bounded retries and secret redaction.
// Zero value is not usable; use New.
type Client struct {
	service     string
	http        *http.Client
	maxAttempts int
	backoff     Backoff
	timeout     time.Duration
	userAgent   string
	log         *slog.Logger
}

// Request describes one logical call. Retries re-send the same body.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is marshaled to JSON when non-nil.
	Body any
	// Secret is redacted from every error message and logged value.
	Secret string
	// Accept lists statuses treated as success. Defaults to 200 only.
	Accept []int
	// SigningSecret, when set, adds HMAC-SHA256 signature headers.
	SigningSecret string
	// MaxResponseBytes caps an accepted body. Zero means DefaultMaxResponseBytes.
	// Bodies of rejected responses are only read far enough to build a message.
	MaxResponseBytes int64
}

type response struct {
	status   int
	body     []byte
	accepted bool
	overflow bool
}

// New returns a Client with 3 attempts, 1s doubling backoff and a 60s
// per-attempt timeout unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		service:     "API",
		maxAttempts: 3,
		backoff:     DefaultBackoff(),
		timeout:     60 * time.Second,
		userAgent:   "vectorwriter/1.0",
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return c
}

// Service returns the name used in error messages.
func (c *Client) Service() string {
	return c.service
}

// Do performs req and decodes an accepted JSON response into out, which may be nil.
//
// 401 fails immediately with ErrUnauthorized; 400 and 403 with ErrRejected.
// 429, 5xx gateway statuses and transport errors are retried; when attempts
// run out the error wraps ErrRetriesExhausted and embeds the last failure.
// Cancelling ctx stops the loop, including any pending backoff.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	redact := sanitizer.Redactor(req.Secret)

	payload, err := c.prepare(req)
	if err != nil {
		return &Error{Kind: ErrInvalidRequest, Message: redact(fmt.Sprintf("%s: %v", c.service, err))}
	}

	accept := req.Accept
	if len(accept) == 0 {
		accept = []int{http.StatusOK}
	}

	var lastErr string
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := c.attempt(ctx, req, payload, accept)
		status, body := resp.status, resp.body

		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("%s request cancelled: %w", c.service, ctxErr)
			}
			lastErr = "Network error: " + redact(sanitizer.SingleLine(err.Error()))

		case resp.overflow:
			return &Error{
				Kind:    ErrResponseTooLarge,
				Status:  status,
				Message: fmt.Sprintf("%s response is larger than %d bytes.", c.service, responseLimit(req)),
			}

		case resp.accepted:
			return c.decode(body, out, status, redact)

		case status == http.StatusUnauthorized:
			return &Error{
				Kind:    ErrUnauthorized,
				Status:  status,
				Message: fmt.Sprintf("%s API key is invalid or expired. Check your key and try again.", c.service),
			}

		case status == http.StatusBadRequest || status == http.StatusForbidden:
			return &Error{
				Kind:    ErrRejected,
				Status:  status,
				Message: fmt.Sprintf("%s API error (%d): %s", c.service, status, safeBody(body, redact)),
			}

		case IsRetryableStatus(status):
			lastErr = fmt.Sprintf("%s returned %d: %s", c.service, status, safeBody(body, redact))

		default:
			return &Error{
				Kind:    ErrUnexpectedStatus,
				Status:  status,
				Message: fmt.Sprintf("Unexpected %s response (%d): %s", c.service, status, safeBody(body, redact)),
			}
		}

		if attempt == c.maxAttempts {
			break
		}

		delay := c.backoff.Delay(attempt)
		c.log.WarnContext(ctx, "request attempt failed, retrying",
			logger.Component("restclient"),
			slog.String("service", c.service),
			slog.String("method", req.Method),
			logger.RetryCount(attempt),
			slog.Int("max_attempts", c.maxAttempts),
			slog.Duration("delay", delay),
			slog.String("reason", lastErr),
		)

		if err := wait(ctx, delay); err != nil {
			return fmt.Errorf("%s request cancelled: %w", c.service, err)
		}
	}

	return &Error{
		Kind:    ErrRetriesExhausted,
		Message: fmt.Sprintf("%s: failed after %d attempts. Last error: %s", c.service, c.maxAttempts, lastErr),
	}
}

func (c *Client) prepare(req Request) ([]byte, error) {
	if req.Method == "" {
		return nil, errors.New("method is required")
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("only http and https URLs are supported")
	}
	if u.Host == "" {
		return nil, errors.New("URL host is required")
	}

	if req.Body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return payload, nil
}

func responseLimit(req Request) int64 {
	if req.MaxResponseBytes > 0 {
		return req.MaxResponseBytes
	}
	return DefaultMaxResponseBytes
}

// attempt performs one HTTP exchange. A non-nil error means no response was received.
func (c *Client) attempt(ctx context.Context, req Request, payload []byte, accept []int) (response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, req.Method, req.URL, body)
	if err != nil {
		return response{}, err
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if req.SigningSecret != "" && payload != nil {
		sig, err := SignPayload(req.SigningSecret, payload)
		if err != nil {
			return response{}, err
		}
		for k, v := range sig.Headers() {
			httpReq.Header.Set(k, v)
		}
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return response{}, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	res := response{status: httpResp.StatusCode, accepted: slices.Contains(accept, httpResp.StatusCode)}
	limit := int64(maxErrorBodyRead)
	if res.accepted {
		limit = responseLimit(req)
	}

	res.body, err = io.ReadAll(io.LimitReader(httpResp.Body, limit+1))
	if err != nil {
		return response{}, err
	}
	if int64(len(res.body)) > limit {
		res.body = res.body[:limit]
		res.overflow = res.accepted
	}
	return res, nil
}

func (c *Client) decode(body []byte, out any, status int, redact func(string) string) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{
			Kind:    ErrDecodeResponse,
			Status:  status,
			Message: redact(fmt.Sprintf("%s returned an invalid JSON response: %v", c.service, err)),
		}
	}
	return nil
}

// safeBody redacts first so truncation cannot split a secret into an unredacted prefix.
func safeBody(body []byte, redact func(string) string) string {
	return sanitizer.MaxLength(sanitizer.SingleLine(redact(string(body))), maxBodyInError)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
