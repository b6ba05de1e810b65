package apperrors

import "errors"

// Error taxonomy for the record pipeline. Storage errors reach the client
// as a single opaque failure; image persistence failures never propagate
// past the filestorage package at all.
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Storage errors
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrConstraintViolation = errors.New("storage rejected value")

	// Upload errors
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// Request errors
	ErrBadRequest = errors.New("bad request")
)
