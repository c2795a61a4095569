package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Chat request failures reported to the caller with a non-200 status.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMessageTooLong     = errors.New("message too long")
	ErrServiceUnavailable = errors.New("completion service not configured")
	ErrConfiguration      = errors.New("knowledge base unavailable")
)

// Upstream completion failures. These are absorbed into the soft error envelope.
var (
	ErrUpstreamModelNotFound  = errors.New("upstream model not found")
	ErrUpstreamRateLimited    = errors.New("upstream rate limited")
	ErrUpstreamForbidden      = errors.New("upstream forbidden")
	ErrRequestTimeout         = errors.New("upstream request timeout")
	ErrUpstreamGenericFailure = errors.New("upstream failure")
)

// UpstreamError records the final status of a failed completion.
type UpstreamError struct {
	Status int
	Model  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion with %s failed with status %d", e.Model, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrUpstreamModelNotFound
	case http.StatusTooManyRequests:
		return ErrUpstreamRateLimited
	case http.StatusForbidden:
		return ErrUpstreamForbidden
	case http.StatusRequestTimeout:
		return ErrRequestTimeout
	default:
		return ErrUpstreamGenericFailure
	}
}

// Media and record failures.
var (
	ErrFileRequired = errors.New("file is required")
	ErrFileTooLarge = errors.New("file exceeds the upload limit")
)
