package vectordb

import "errors"

// ErrConfiguration is matched by every ConfigError.
var ErrConfiguration = errors.New("configuration error")

var (
	ErrIndexNotFound = errors.New("index not found")
	ErrZeroDimension = errors.New("zero dimension embedding")
	ErrNoRecords     = errors.New("no records to upsert")
)

// ConfigError is a target or input problem that retrying cannot fix.
type ConfigError struct {
	Kind    error
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Kind
}

// Is makes every ConfigError match ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}
