package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/vectorwriter/pkg/logger"
)

const (
	DefaultAddr              = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
)

type config struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	logger            *slog.Logger
}

// Server serves one handler until its Run context ends.
type Server struct {
	cfg config
	log *slog.Logger

	mu   sync.Mutex
	addr net.Addr
}

// New returns a Server.
func New(opts ...Option) *Server {
	cfg := config{
		addr:              DefaultAddr,
		readHeaderTimeout: DefaultReadHeaderTimeout,
		shutdownTimeout:   DefaultShutdownTimeout,
		logger:            slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		cfg: cfg,
		log: cfg.logger.With(logger.Component("httpserver")),
	}
}

// Addr returns the bound address while the server runs, nil otherwise.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run listens on the configured address and serves handler until ctx ends.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}
	return s.Serve(ctx, ln, handler)
}

// Serve serves handler on ln until ctx ends, then drains. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	s.mu.Lock()
	if s.addr != nil {
		s.mu.Unlock()
		_ = ln.Close()
		return ErrRunning
	}
	s.addr = ln.Addr()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.addr = nil
		s.mu.Unlock()
	}()

	if handler == nil {
		handler = http.NotFoundHandler()
	}
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       s.cfg.readTimeout,
		ReadHeaderTimeout: s.cfg.readHeaderTimeout,
		WriteTimeout:      s.cfg.writeTimeout,
		IdleTimeout:       s.cfg.idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("%w: %w", ErrStart, err)
	case <-ctx.Done():
	}

	start := time.Now()
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.shutdownTimeout)
	defer cancel()

	shutdownErr := srv.Shutdown(drainCtx)
	if shutdownErr != nil {
		_ = srv.Close()
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		shutdownErr = errors.Join(shutdownErr, err)
	}

	if shutdownErr != nil {
		s.log.Warn("http server stopped before drain finished",
			logger.Duration(time.Since(start)),
			logger.Error(shutdownErr),
		)
		return fmt.Errorf("%w: %w", ErrShutdown, shutdownErr)
	}
	s.log.Info("http server stopped", logger.Duration(time.Since(start)))
	return nil
}
