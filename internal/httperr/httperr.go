// Package httperr defines the error taxonomy shared by services and handlers.
// Every failed request terminates in exactly one Error, serialized as a
// {"message": ...} body with the matching HTTP status.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports malformed or missing input (422).
func Validation(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message}
}

// Conflict reports a uniqueness violation (422, matching the validation
// status the API has always used for duplicate signups).
func Conflict(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message}
}

// Unauthorized reports failed credential verification (401). Messages must
// stay generic so responses cannot be used for account enumeration.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden reports a missing/invalid token or a rejected old password (403).
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Internal reports store or hashing infrastructure failure (500).
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// Write serializes err as the terminal JSON response. Errors outside the
// taxonomy are collapsed to a generic 500 so internals never leak.
func Write(w http.ResponseWriter, err error) {
	var httpErr *Error
	if !errors.As(err, &httpErr) {
		httpErr = Internal("An unknown error occurred")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Status)
	json.NewEncoder(w).Encode(map[string]string{"message": httpErr.Message})
}
