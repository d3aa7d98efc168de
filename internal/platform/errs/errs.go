package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error returned by a service wraps exactly one of these
// so the HTTP layer can pick a status code with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrUpstream   = errors.New("upstream error")
)

// Validation returns an ErrValidation carrying a client-facing message.
func Validation(format string, args ...interface{}) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound carrying a client-facing message.
func NotFound(format string, args ...interface{}) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflict returns an ErrConflict carrying a client-facing message.
func Conflict(format string, args ...interface{}) error {
	return &kindError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// Upstream wraps a failure talking to the external clinical API.
func Upstream(err error, format string, args ...interface{}) error {
	return &kindError{kind: ErrUpstream, msg: fmt.Sprintf(format, args...), cause: err}
}

type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// Status maps an error to the HTTP status the API reports for it.
// Conflicts (id collisions) are storage failures and report 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
