package s3client

import "errors"

// Object and bucket lookups.
var (
	ErrObjectNotFound = errors.New("s3client: object not found")
	ErrBucketNotFound = errors.New("s3client: bucket not found")
	ErrObjectTooLarge = errors.New("s3client: object exceeds size limit")
	ErrAccessDenied   = errors.New("s3client: access denied")
)

// Transient service conditions. Timeout and cancel errors also wrap the
// original context error.
var (
	ErrRequestTimeout     = errors.New("s3client: request timed out")
	ErrServiceUnavailable = errors.New("s3client: service unavailable")
	ErrOperationTimeout   = errors.New("s3client: operation timed out")
	ErrOperationCanceled  = errors.New("s3client: operation canceled")
)

// Setup.
var (
	ErrInvalidConfig = errors.New("s3client: invalid configuration")
	ErrLoadAWSConfig = errors.New("s3client: load aws config")
)
