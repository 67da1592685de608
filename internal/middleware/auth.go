package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/lexidev/users-backend/internal/httperr"
	"github.com/lexidev/users-backend/internal/services"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is the request gate: it extracts the bearer token from the
// Authorization header, verifies it, and attaches the authenticated identity
// to the request context. Preflight requests bypass the check entirely.
// Rejection messages are generic; the verification detail goes to the log.
func RequireAuth(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				httperr.Write(w, httperr.Forbidden("Authentication failed, token missing."))
				return
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				log.Printf("Authentication error: %v", err)
				httperr.Write(w, httperr.Forbidden("Authentication failed! Invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated identity placed by
// RequireAuth, if any.
func IdentityFromContext(ctx context.Context) (services.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(services.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
