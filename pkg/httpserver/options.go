package httpserver

import (
	"log/slog"
	"time"
)

// Option configures a Server. Zero values keep the default.
type Option func(*config)

func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.readTimeout, d) }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.readHeaderTimeout, d) }
}

// WithWriteTimeout bounds a whole response. Runs answer only when the last
// batch is written, so keep it above the longest expected run.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.writeTimeout, d) }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.idleTimeout, d) }
}

// WithShutdownTimeout sets how long in-flight requests may drain.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.shutdownTimeout, d) }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func setDuration(dst *time.Duration, d time.Duration) {
	if d > 0 {
		*dst = d
	}
}
