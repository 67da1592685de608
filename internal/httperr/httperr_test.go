package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrite_TaxonomyErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("bad input"), http.StatusUnprocessableEntity},
		{Conflict("already exists"), http.StatusUnprocessableEntity},
		{Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{Forbidden("no token"), http.StatusForbidden},
		{NotFound("no such user"), http.StatusNotFound},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Write(rec, tc.err)

		if rec.Code != tc.status {
			t.Errorf("Write(%q): status = %d, want %d", tc.err.Message, rec.Code, tc.status)
		}

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if body["message"] != tc.err.Message {
			t.Errorf("message = %q, want %q", body["message"], tc.err.Message)
		}
	}
}

func TestWrite_UnknownError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Write(rec, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	// Internals must not leak.
	if body["message"] != "An unknown error occurred" {
		t.Errorf("message = %q, want generic", body["message"])
	}
}

func TestWrite_WrappedError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Write(rec, fmt.Errorf("updating profile: %w", NotFound("no such user")))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
