package sink

import "errors"

var (
	ErrEmptyPayload = errors.New("payload is empty")
	ErrInvalidJSON  = errors.New("payload is not valid JSON")
)
