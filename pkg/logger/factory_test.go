package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vectorwriter/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf)).Info("hello")

		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText)).Info("hello")
		assert.Contains(t, buf.String(), "level=INFO msg=hello")
	})

	t.Run("unknown format falls back to json", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat("xml")).Info("hello")
		assert.Equal(t, "hello", decode(t, buf)["msg"])
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Equal(t, "kept", decode(t, buf)["msg"])
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test"))).Info("msg")
		assert.Equal(t, "test", decode(t, buf)["svc"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env     string
		wantEnv string
		debug   bool
		json    bool
	}{
		{env: "production", wantEnv: logger.EnvProduction, json: true},
		{env: "prod", wantEnv: logger.EnvProduction, json: true},
		{env: "Staging", wantEnv: logger.EnvStaging, json: true},
		{env: "development", wantEnv: logger.EnvDevelopment, debug: true},
		{env: "", wantEnv: logger.EnvDevelopment, debug: true},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithEnvironment(tt.env, "vectorwriter"))
			assert.Equal(t, tt.debug, log.Enabled(context.Background(), slog.LevelDebug))

			log.Info("hello")
			if tt.json {
				entry := decode(t, buf)
				assert.Equal(t, tt.wantEnv, entry["env"])
				assert.Equal(t, "vectorwriter", entry["service"])
				return
			}
			assert.Contains(t, buf.String(), "service=vectorwriter env="+tt.wantEnv)
		})
	}

	t.Run("later options win", func(t *testing.T) {
		t.Parallel()

		log := logger.New(logger.WithEnvironment("development", ""), logger.WithLevel(slog.LevelError))
		assert.False(t, log.Enabled(context.Background(), slog.LevelWarn))
	})
}

func TestWithContextExtractors(t *testing.T) {
	t.Parallel()

	type key struct{}
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
			if v, ok := ctx.Value(key{}).(string); ok {
				return logger.RequestID(v), true
			}
			return slog.Attr{}, false
		}),
	).With(logger.Component("runner"))

	log.InfoContext(context.WithValue(context.Background(), key{}, "42"), "with id")
	entry := decode(t, buf)
	assert.Equal(t, "42", entry["request_id"])
	assert.Equal(t, "runner", entry["component"])

	buf.Reset()
	log.InfoContext(context.Background(), "without id")
	assert.NotContains(t, decode(t, buf), "request_id")
}

func TestWithRedaction(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	redact := func(s string) string { return strings.ReplaceAll(s, "sk-secret", "[REDACTED]") }
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithRedaction(redact),
		logger.WithAttr(slog.String("static", "sk-secret")),
	)

	log.Info("calling with sk-secret",
		slog.String("header", "Api-Key sk-secret"),
		logger.Error(errors.New("401 for key sk-secret")),
	)

	assert.NotContains(t, buf.String(), "sk-secret")

	entry := decode(t, buf)
	assert.Equal(t, "Api-Key [REDACTED]", entry["header"])
	assert.Equal(t, "401 for key [REDACTED]", entry["error"])
	assert.Equal(t, "[REDACTED]", entry["static"])
	assert.Equal(t, "calling with [REDACTED]", entry["msg"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	l, err := logger.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = logger.ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = logger.ParseLevel("loud")
	assert.Error(t, err)
}
