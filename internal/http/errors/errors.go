// Package errors defines the standard API error envelope.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the standard application error shape.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"` // carried out of band, set on the response
	Err        error  `json:"-"` // original cause for logs, never sent to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New builds an AppError.
func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// FromError converts any error into an AppError, defaulting to an opaque
// internal error that keeps the cause for server-side logs.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail returns a copy with caller-facing detail. Copying keeps the
// predefined instances immutable.
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithCause returns a copy carrying the original error.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// Predefined errors. The taxonomy mirrors the verification pipeline:
// validation and precondition failures are 400s, unknown applications and
// blobs are 404s, cipher integrity failures surface as opaque 500s.

var (
	ErrInvalidJSON = &AppError{Code: "invalid_json", Message: "Invalid JSON format", HTTPStatus: http.StatusBadRequest}
	ErrBadRequest  = &AppError{Code: "bad_request", Message: "Bad request", HTTPStatus: http.StatusBadRequest}

	ErrValidation          = &AppError{Code: "validation_failed", Message: "Validation failed", HTTPStatus: http.StatusBadRequest}
	ErrUnsupportedMedia    = &AppError{Code: "unsupported_media_type", Message: "Unsupported document media type", HTTPStatus: http.StatusBadRequest}
	ErrPayloadTooLarge     = &AppError{Code: "payload_too_large", Message: "Document exceeds the size limit", HTTPStatus: http.StatusRequestEntityTooLarge}
	ErrPreconditionFailed  = &AppError{Code: "precondition_failed", Message: "Operation precondition not met", HTTPStatus: http.StatusBadRequest}
	ErrNotFound            = &AppError{Code: "not_found", Message: "Not found", HTTPStatus: http.StatusNotFound}
	ErrConflict            = &AppError{Code: "conflict", Message: "Conflict", HTTPStatus: http.StatusConflict}
	ErrMethodNotAllowed    = &AppError{Code: "method_not_allowed", Message: "Method not allowed", HTTPStatus: http.StatusMethodNotAllowed}
	ErrTooManyRequests     = &AppError{Code: "rate_limited", Message: "Too many requests", HTTPStatus: http.StatusTooManyRequests}
	ErrInternalServerError = &AppError{Code: "internal_error", Message: "Internal server error", HTTPStatus: http.StatusInternalServerError}
	ErrServiceUnavailable  = &AppError{Code: "service_unavailable", Message: "Service unavailable", HTTPStatus: http.StatusServiceUnavailable}
)
