// Package errors builds the conversion-gateway-specific DomainError
// instances for each error kind the gateway raises.
package errors

import (
	sharedErrors "github.com/docgate/docgate/internal/modules/shared/domain/errors"
)

// NewValidationError reports a malformed request (missing/extra fields,
// wrong shapes) — maps to HTTP 400.
func NewValidationError(message string, metadata map[string]any) error {
	return sharedErrors.NewKindError(sharedErrors.KindValidation, message, metadata)
}

// NewUnsupportedMediaError reports an undetermined or contradictory
// effective type — maps to HTTP 415.
func NewUnsupportedMediaError(message string, metadata map[string]any) error {
	return sharedErrors.NewKindError(sharedErrors.KindUnsupportedMedia, message, metadata)
}

// NewQueueFullError reports admission over capacity — maps to HTTP 503.
func NewQueueFullError(message string) error {
	return sharedErrors.NewKindError(sharedErrors.KindQueueFull, message, nil)
}

// NewConvertTimeoutError reports a backend deadline exceeded — maps to
// HTTP 504.
func NewConvertTimeoutError(message string, metadata map[string]any) error {
	return sharedErrors.NewKindError(sharedErrors.KindConvertTimeout, message, metadata)
}

// NewConvertError reports a backend exit code != 0 or protocol error —
// maps to HTTP 502.
func NewConvertError(message string, metadata map[string]any) error {
	return sharedErrors.NewKindError(sharedErrors.KindConvertError, message, metadata)
}

// NewOverloadError reports no office worker available despite admission —
// maps to HTTP 502.
func NewOverloadError(message string) error {
	return sharedErrors.NewKindError(sharedErrors.KindOverload, message, nil)
}

// NewInternalError reports anything else — maps to HTTP 500.
func NewInternalError(message string, metadata map[string]any) error {
	return sharedErrors.NewKindError(sharedErrors.KindInternal, message, metadata)
}

// NewUploadTooLargeError reports an upload exceeding MAX_FILE_SIZE — maps
// to HTTP 413.
func NewUploadTooLargeError(message string) error {
	return sharedErrors.NewKindError(sharedErrors.KindUploadTooLarge, message, nil)
}
