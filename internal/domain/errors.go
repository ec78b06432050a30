package domain

import (
	"context"
	"errors"
)

var (
	// ErrTransportFailure is returned when an outbound request fails before a response arrives
	ErrTransportFailure = errors.New("transport failure")

	// ErrHTTPStatusFailure is returned when a source answers with a non-2xx status
	ErrHTTPStatusFailure = errors.New("unexpected HTTP status")

	// ErrFieldMissing is returned when a structural signature is not found or its value cannot be parsed
	ErrFieldMissing = errors.New("field missing")

	// ErrInvalidProductURL is returned when a detail page address has no product identifier
	ErrInvalidProductURL = errors.New("invalid product URL")

	// ErrProductDetailsNotFound is returned when neither source produced a record
	ErrProductDetailsNotFound = errors.New("product details not found on both sources")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrReviewHarvestFailed is returned when a review page cannot be fetched and partial results are not accepted
	ErrReviewHarvestFailed = errors.New("review harvest failed")
)

// Failure kinds reported in logs for recovered errors.
const (
	FailureTransport    = "transport"
	FailureHTTPStatus   = "http_status"
	FailureFieldMissing = "field_missing"
	FailureCanceled     = "canceled"
	FailureUnknown      = "unknown"
)

// FailureKind classifies an error for diagnostics.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrHTTPStatusFailure):
		return FailureHTTPStatus
	case errors.Is(err, ErrTransportFailure):
		return FailureTransport
	case errors.Is(err, ErrFieldMissing):
		return FailureFieldMissing
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureCanceled
	default:
		return FailureUnknown
	}
}
