package config

import "errors"

var (
	ErrParsingConfig = errors.New("config: failed to parse environment")
	// ErrInvalidConfig wraps the error returned by a Validate method.
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrNilPointer    = errors.New("config: nil pointer")
)
