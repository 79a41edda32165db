// Package apperr defines the error taxonomy shared by usecases and
// HTTP handlers. Every failure that reaches a response boundary is one
// of these; Wrap normalizes anything else.
package apperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Error struct {
	Code    int      `json:"statusCode"`
	Message string   `json:"message"`
	Errs    []string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code int, message string, errs ...string) *Error {
	return &Error{Code: code, Message: message, Errs: errs}
}

func BadRequest(message string, errs ...string) *Error {
	return New(http.StatusBadRequest, message, errs...)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict reports a duplicate identity. It intentionally maps to 400
// rather than 409 to keep the public contract stable.
func Conflict(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// Wrap normalizes a foreign error into the taxonomy. Database-layer
// errors are translated; anything unrecognized becomes Internal with
// the given fallback message.
func Wrap(err error, fallback string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("resource not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("resource already exists")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return Conflict("resource already exists")
	}

	return Internal(fallback)
}

func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}

func IsConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
