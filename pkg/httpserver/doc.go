// Package httpserver runs the HTTP API of vectorwriter serve mode.
//
// Server listens on a configured address (or a caller supplied listener) and
// serves until its context is cancelled. Cancellation starts a graceful drain:
// the listener closes, in-flight runs keep going until ShutdownTimeout, and
// anything still open after that is closed hard. Request contexts are detached
// from the Run context so a drain does not abort runs that are already
// writing to a provider.
//
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second,
//	    httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Listen failures are wrapped with ErrStart and drain failures with
// ErrShutdown.
package httpserver
