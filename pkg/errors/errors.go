package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// BackendUnavailable wraps any collaborator I/O failure during list, insert
// or update. Callers decide whether to retry; the inbox poller logs and waits
// for its next tick instead of escalating.
func BackendUnavailable(message string, err error) *AppError {
	return &AppError{
		Code:    "BACKEND_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

// Validation is raised synchronously, before any I/O is attempted.
func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

// InvalidAttachment is raised at staging time, before any upload.
func InvalidAttachment(message string, err error) *AppError {
	return &AppError{
		Code:    "INVALID_ATTACHMENT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func TooManyRequests(message string, waitTime interface{}) *AppError {
	return &AppError{
		Code:    "TOO_MANY_REQUESTS",
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}

// PartialReadError reports a batch mark-read where some writes failed. The
// committed subset stays read; FailedIDs remain unread locally and must be
// surfaced, never swallowed, or the unread counter drifts.
type PartialReadError struct {
	FailedIDs []string
	Err       error
}

func (e *PartialReadError) Error() string {
	return fmt.Sprintf("PARTIAL_READ_FAILURE: %d message(s) still unread: %s",
		len(e.FailedIDs), strings.Join(e.FailedIDs, ", "))
}

func (e *PartialReadError) Unwrap() error {
	return e.Err
}

func PartialReadFailure(failedIDs []string, err error) *PartialReadError {
	return &PartialReadError{FailedIDs: failedIDs, Err: err}
}

func Is(err error, code string) bool {
	if code == "PARTIAL_READ_FAILURE" {
		var partial *PartialReadError
		return errors.As(err, &partial)
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
