package dataset

import "errors"

var (
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrEmptyDataset       = errors.New("dataset is empty")
	ErrNoUsableItems      = errors.New("dataset has no usable items")
	ErrInvalidFormat      = errors.New("invalid dataset format")
)

// LoadError carries the user facing message for a failed load.
type LoadError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the underlying cause.
func (e *LoadError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
