package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind codes. They double as the "error" field of JSON error responses and as
// i18n message keys.
const (
	CodeInvalidSignature     = "invalid_signature"
	CodeMissingConfiguration = "missing_configuration"
	CodeNotFound             = "not_found"
	CodeBadRequest           = "bad_request"
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "forbidden"
	CodeConflict             = "conflict"
	CodeInternal             = "internal_error"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidSignature = func(err error) *AppError {
		return &AppError{Code: CodeInvalidSignature, Message: "Webhook signature rejected", Err: err}
	}
	ErrMissingConfiguration = func(err error) *AppError {
		return &AppError{Code: CodeMissingConfiguration, Message: "Server is not configured", Err: err}
	}
	ErrNotFound = func(err error) *AppError {
		return &AppError{Code: CodeNotFound, Message: "Video not found", Err: err}
	}
	ErrBadRequest = func(err error) *AppError {
		return &AppError{Code: CodeBadRequest, Message: "Request could not be processed", Err: err}
	}
	ErrUnauthorized = func(err error) *AppError {
		return &AppError{Code: CodeUnauthorized, Message: "Authentication required", Err: err}
	}
	ErrForbidden = func(err error) *AppError {
		return &AppError{Code: CodeForbidden, Message: "Operation not permitted", Err: err}
	}
	ErrConflict = func(err error) *AppError {
		return &AppError{Code: CodeConflict, Message: "Concurrent modification", Err: err}
	}
	ErrInternal = func(err error) *AppError {
		return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
	}
)

// CodeOf returns the kind code of err, or CodeInternal when err carries none.
func CodeOf(err error) string {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// Is reports whether err is an *AppError of the given kind.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
