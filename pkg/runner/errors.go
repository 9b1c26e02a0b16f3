package runner

import (
	"context"
	"errors"

	"github.com/dmitrymomot/vectorwriter/pkg/dataset"
	"github.com/dmitrymomot/vectorwriter/pkg/restclient"
	"github.com/dmitrymomot/vectorwriter/pkg/runinput"
	"github.com/dmitrymomot/vectorwriter/pkg/sanitizer"
	"github.com/dmitrymomot/vectorwriter/pkg/vectordb"
)

var (
	// ErrNothingUpserted means the provider accepted every request but wrote nothing.
	ErrNothingUpserted = errors.New("No vectors were upserted. The provider accepted the request but " +
		"reported 0 vectors written. Check your index/collection configuration.")
	ErrNoDatasetSource = errors.New("dataset source is not configured")
)

const (
	internalErrorMessage  = "Internal error. Check logs."
	cancelledErrorMessage = "Run cancelled before completion."
)

// ErrorClass groups run failures by who can fix them.
type ErrorClass int

const (
	ClassInternal ErrorClass = iota
	// ClassInput errors are fixed by changing the run input or target setup.
	ClassInput
	// ClassUpstream errors come from a provider or dataset service.
	ClassUpstream
	ClassCancelled
)

// Classify returns the class of a Run error.
func Classify(err error) ErrorClass {
	var restErr *restclient.Error
	switch {
	case err == nil:
		return ClassInternal
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ClassCancelled
	case errors.Is(err, runinput.ErrInvalidInput),
		errors.Is(err, vectordb.ErrConfiguration),
		errors.Is(err, dataset.ErrEmptyDataset),
		errors.Is(err, dataset.ErrNoUsableItems):
		return ClassInput
	case errors.As(err, &restErr),
		errors.Is(err, dataset.ErrDatasetUnavailable),
		errors.Is(err, ErrNothingUpserted):
		return ClassUpstream
	default:
		return ClassInternal
	}
}

// FailureMessage returns a user safe message for err with secrets redacted.
func FailureMessage(err error, secrets ...string) string {
	switch Classify(err) {
	case ClassInput, ClassUpstream:
		return sanitizer.Redactor(secrets...)(err.Error())
	case ClassCancelled:
		return cancelledErrorMessage
	default:
		return internalErrorMessage
	}
}
