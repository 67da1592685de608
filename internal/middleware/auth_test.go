package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexidev/users-backend/internal/services"
)

func gateFixture(t *testing.T) (*services.TokenService, http.Handler, *services.Identity) {
	t.Helper()

	tokens := services.NewTokenService("gate-secret", time.Hour)
	var seen services.Identity

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if ok {
			seen = identity
		}
		w.WriteHeader(http.StatusOK)
	})

	return tokens, RequireAuth(tokens)(next), &seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens, gate, seen := gateFixture(t)

	tok, err := tokens.Issue("abc123", "jo@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", seen.UserID)
	assert.Equal(t, "jo@x.com", seen.Email)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	t.Parallel()

	_, gate, _ := gateFixture(t)

	for _, header := range []string{"", "Bearer", "Basic dXNlcg==", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, "header %q", header)
		assert.Contains(t, rec.Body.String(), "message")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	_, gate, _ := gateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.valid.token")
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	expired := services.NewTokenService("gate-secret", -time.Minute)
	tok, err := expired.Issue("abc123", "jo@x.com")
	require.NoError(t, err)

	_, gate, _ := gateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth_PreflightBypass(t *testing.T) {
	t.Parallel()

	_, gate, _ := gateFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
