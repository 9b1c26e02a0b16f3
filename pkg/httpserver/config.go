package httpserver

import "time"

// Config is the env form of the server options.
type Config struct {
	Addr              string        `env:"VECTORWRITER_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout       time.Duration `env:"VECTORWRITER_HTTP_READ_TIMEOUT" envDefault:"30s"`
	ReadHeaderTimeout time.Duration `env:"VECTORWRITER_HTTP_READ_HEADER_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"VECTORWRITER_HTTP_WRITE_TIMEOUT" envDefault:"15m"` // a full run
	IdleTimeout       time.Duration `env:"VECTORWRITER_HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"VECTORWRITER_HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// NewFromConfig creates a Server from cfg. opts are applied after cfg.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	return New(append([]Option{
		WithAddr(cfg.Addr),
		WithReadTimeout(cfg.ReadTimeout),
		WithReadHeaderTimeout(cfg.ReadHeaderTimeout),
		WithWriteTimeout(cfg.WriteTimeout),
		WithIdleTimeout(cfg.IdleTimeout),
		WithShutdownTimeout(cfg.ShutdownTimeout),
	}, opts...)...)
}
