package errors

import (
	"net/http"

	"dentist/internal/errors"
)

// Kind is the closed set of failure categories the application reports.
type Kind int

const (
	KindInternal Kind = iota
	KindAlreadyExists
	KindNotFound
	KindInvalidCredential
	KindInvalidToken
	KindValidation
	KindConfig
)

// Error causes reported in the response envelope.
const (
	CauseAlreadyExists     = "ALREADY_EXISTS"
	CauseObjectNotFound    = "OBJECT_NOT_FOUND"
	CauseRouteNotFound     = "ROUTE_NOT_FOUND"
	CauseInvalidCredential = "INVALID_CREDENTIAL"
	CauseInvalidToken      = "INVALID_TOKEN"
	CauseBadFormat         = "BAD_FORMAT"
	CauseConfigNotFound    = "CONFIG_NOT_FOUND"
	CauseConfigNotNumber   = "CONFIG_NOT_NUMBER"
	CauseInternal          = "INTERNAL_ERROR"
)

// AppError is an application error carrying everything the HTTP layer needs
// to render the error envelope.
type AppError struct {
	kind       Kind
	httpCode   int
	code       string
	cause      string
	clientFlag bool
	raw        map[string]any
}

func newAppError(kind Kind, httpCode int, code, cause string, clientFlag bool) *AppError {
	return &AppError{
		kind:       kind,
		httpCode:   httpCode,
		code:       code,
		cause:      cause,
		clientFlag: clientFlag,
	}
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.code + ": " + e.cause
}

// Is matches on kind, code and cause so that copies made by WithRaw or
// WithCause still compare equal to the sentinel they came from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}

	return e.kind == t.kind && e.code == t.code && e.cause == t.cause
}

// Kind returns the failure category.
func (e *AppError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *AppError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *AppError) ErrorCode() string {
	return e.code
}

// Cause returns the machine readable cause.
func (e *AppError) Cause() string {
	return e.cause
}

// ClientFlag reports whether the envelope carries "error": true.
func (e *AppError) ClientFlag() bool {
	return e.clientFlag
}

// Raw returns optional structured details.
func (e *AppError) Raw() map[string]any {
	return e.raw
}

// WithRaw returns a copy of the error carrying structured details.
func (e *AppError) WithRaw(raw map[string]any) *AppError {
	cp := *e
	cp.raw = raw

	return &cp
}

// WithCause returns a copy of the error with a different cause.
func (e *AppError) WithCause(cause string) *AppError {
	cp := *e
	cp.cause = cause

	return &cp
}

// WrapMessage wraps the error with additional context message
func (e *AppError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Predefined error types
var (
	ErrAlreadyExists = newAppError(
		KindAlreadyExists,
		http.StatusConflict,
		"ALREADY_EXISTS_ERROR",
		CauseAlreadyExists,
		false,
	)

	ErrNotFound = newAppError(
		KindNotFound,
		http.StatusNotFound,
		"NOT_FOUND_ERROR",
		CauseObjectNotFound,
		false,
	)

	ErrRouteNotFound = ErrNotFound.WithCause(CauseRouteNotFound)

	ErrInvalidCredential = newAppError(
		KindInvalidCredential,
		http.StatusBadRequest,
		"INVALID_CREDENTIAL_ERROR",
		CauseInvalidCredential,
		true,
	)

	ErrInvalidToken = newAppError(
		KindInvalidToken,
		http.StatusUnauthorized,
		"INVALID_TOKEN_ERROR",
		CauseInvalidToken,
		true,
	)

	ErrValidation = newAppError(
		KindValidation,
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		CauseBadFormat,
		true,
	)

	ErrConfigNotFound = newAppError(
		KindConfig,
		http.StatusInternalServerError,
		"CONFIG_ERROR",
		CauseConfigNotFound,
		false,
	)

	ErrConfigNotNumber = ErrConfigNotFound.WithCause(CauseConfigNotNumber)

	ErrInternal = newAppError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		CauseInternal,
		false,
	)
)

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.kind
	}

	return KindInternal
}
