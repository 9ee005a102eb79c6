// Package apperr defines the application error taxonomy and its mapping to
// HTTP status codes. Handlers inspect errors with errors.As/Is and render
// them through pkg/response; anything that is not an *apperr.Error is
// reported as a plain 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries an HTTP status, a stable machine-readable code, and a
// human-readable message. Err, when set, is the wrapped cause.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two *Error values by code, so sentinel comparisons like
// errors.Is(err, apperr.DuplicateName("")) work regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// ── Input validation (4xx, user-correctable) ─────────────────────────────────

func UnsupportedFileType(name string) *Error {
	return &Error{
		Status:  http.StatusUnsupportedMediaType,
		Code:    "UNSUPPORTED_FILE_TYPE",
		Message: fmt.Sprintf("file %q must be jpeg, jpg, png or gif", name),
	}
}

func TooManyFiles(field string, max int) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    "TOO_MANY_FILES",
		Message: fmt.Sprintf("field %q accepts at most %d file(s)", field, max),
	}
}

func FileTooLarge(name string, limit int64) *Error {
	return &Error{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "FILE_TOO_LARGE",
		Message: fmt.Sprintf("file %q exceeds the %d byte limit", name, limit),
	}
}

func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: msg}
}

// ── Business-rule conflicts ──────────────────────────────────────────────────

func DuplicateName(name string) *Error {
	return &Error{
		Status:  http.StatusConflict,
		Code:    "DUPLICATE_NAME",
		Message: fmt.Sprintf("a record named %q already exists", name),
	}
}

func NotFound(what string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: what + " not found",
	}
}

func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Code: "CONFLICT", Message: msg}
}

// ── Infrastructure failures (5xx) ────────────────────────────────────────────

func Storage(op string, err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    "STORAGE_ERROR",
		Message: "storage " + op + " failed",
		Err:     err,
	}
}

func Persistence(op string, err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    "PERSISTENCE_ERROR",
		Message: "database " + op + " failed",
		Err:     err,
	}
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-facing message for err. Infrastructure causes
// are not leaked for non-taxonomy errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal Server Error"
}
