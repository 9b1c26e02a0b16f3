package runapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/vectorwriter/pkg/httpserver"
	"github.com/dmitrymomot/vectorwriter/pkg/logger"
	"github.com/dmitrymomot/vectorwriter/pkg/runinput"
	"github.com/dmitrymomot/vectorwriter/pkg/runner"
)

const (
	DefaultMaxBodyBytes     = 64 << 20
	DefaultReadinessTimeout = 2 * time.Second
)

// Runner executes a run. *runner.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, raw map[string]any) (runner.Result, error)
}

// Options configures Router. Runner is required.
type Options struct {
	Runner           Runner
	Logger           *slog.Logger
	Checks           []httpserver.Check
	ReadinessTimeout time.Duration
	MaxBodyBytes     int64
}

// Router builds the HTTP API.
func Router(opts Options) chi.Router {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.ReadinessTimeout <= 0 {
		opts.ReadinessTimeout = DefaultReadinessTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	log := opts.Logger.With(logger.Component("runapi"))

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/health", func(h chi.Router) {
		h.Get("/live", httpserver.LivenessHandler())
		h.Get("/ready", httpserver.ReadinessHandler(log, opts.ReadinessTimeout, opts.Checks...))
	})

	r.Post("/v1/runs", runHandler(opts.Runner, log, opts.MaxBodyBytes))

	return r
}

func runHandler(rn Runner, log *slog.Logger, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		raw, err := decodeInput(http.MaxBytesReader(w, r.Body, maxBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body is too large.")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid_json", "Request body must be a JSON object.")
			return
		}

		start := time.Now()
		res, err := rn.Run(ctx, raw)
		if err != nil {
			status, code := errorStatus(runner.Classify(err))
			log.WarnContext(ctx, "run request failed",
				logger.Status(status),
				logger.Duration(time.Since(start)),
				logger.Error(err),
			)
			writeError(w, status, code, runner.FailureMessage(err, runinput.Secrets(raw)...))
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// decodeInput reads one JSON object, keeping numbers as json.Number.
func decodeInput(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("null body")
	}
	return raw, nil
}

func errorStatus(class runner.ErrorClass) (int, string) {
	switch class {
	case runner.ClassInput:
		return http.StatusUnprocessableEntity, "invalid_input"
	case runner.ClassUpstream:
		return http.StatusBadGateway, "upstream_error"
	case runner.ClassCancelled:
		return http.StatusServiceUnavailable, "cancelled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
