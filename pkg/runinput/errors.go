package runinput

import "errors"

// ErrInvalidInput is matched by every error returned from Validate.
var ErrInvalidInput = errors.New("invalid input")

// FieldError reports the first failed validation rule.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidInput) succeed.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInput
}
