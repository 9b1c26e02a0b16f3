package httpserver

import "errors"

var (
	ErrStart = errors.New("http server failed to start")
	// ErrShutdown means in-flight requests outlived the shutdown timeout.
	ErrShutdown = errors.New("http server did not drain in time")
	ErrRunning  = errors.New("http server is already running")
)
