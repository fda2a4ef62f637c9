package service

import (
	"errors"
	"net/http"
)

// Error is a domain error that carries the HTTP status it maps to at the
// boundary. Anything that is not an *Error surfaces as a 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewConflict reports a uniqueness violation.
func NewConflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// NewNotFound reports a missing record or a batch existence-check mismatch.
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// NewBadRequest reports malformed or empty input.
func NewBadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NewUnprocessable reports input that parsed but cannot be accepted, such as
// an unsupported upload mime type.
func NewUnprocessable(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message}
}

// AsError unwraps a domain error from err, if present.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
