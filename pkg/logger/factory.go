package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Environments understood by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Format is the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
	redact     func(string) string
}

// Option configures New.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat selects the encoding. Unknown formats fall back to JSON.
func WithFormat(f Format) Option {
	return func(c *config) {
		if f != FormatText {
			f = FormatJSON
		}
		c.format = f
	}
}

func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithEnvironment applies the defaults for env and tags records with service
// and env. Unknown environments are treated as development. "prod" and
// "stage" are accepted as short names.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		switch strings.ToLower(strings.TrimSpace(env)) {
		case EnvProduction, "prod":
			c.level, c.format, env = slog.LevelInfo, FormatJSON, EnvProduction
		case EnvStaging, "stage":
			c.level, c.format, env = slog.LevelInfo, FormatJSON, EnvStaging
		default:
			c.level, c.format, env = slog.LevelDebug, FormatText, EnvDevelopment
		}
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
		c.attrs = append(c.attrs, slog.String("env", env))
	}
}

// WithRedaction rewrites every string and error value through redact.
func WithRedaction(redact func(string) string) Option {
	return func(c *config) {
		if redact != nil {
			c.redact = redact
		}
	}
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

// New builds a logger. Without options it writes JSON at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}
	if cfg.redact != nil {
		handlerOpts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
			return redactAttr(cfg.redact, a)
		}
	}

	var h slog.Handler
	if cfg.format == FormatText {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	// Handler level attrs bypass ReplaceAttr.
	if len(cfg.attrs) > 0 {
		attrs := cfg.attrs
		if cfg.redact != nil {
			attrs = make([]slog.Attr, len(cfg.attrs))
			for i, a := range cfg.attrs {
				attrs[i] = redactAttr(cfg.redact, a)
			}
		}
		h = h.WithAttrs(attrs)
	}

	if len(cfg.extractors) > 0 {
		h = contextHandler{Handler: h, extractors: cfg.extractors}
	}
	return slog.New(h)
}

func redactAttr(redact func(string) string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(redact(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			a.Value = slog.StringValue(redact(err.Error()))
		}
	}
	return a
}
