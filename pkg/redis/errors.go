package redis

import "errors"

var (
	ErrNoURL      = errors.New("redis: connection URL is not set")
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	// ErrNotReady means no ping succeeded within the retry budget.
	ErrNotReady  = errors.New("redis: server not ready")
	ErrUnhealthy = errors.New("redis: ping failed")
)
