package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/lexidev/users-backend/internal/httperr"
	"github.com/lexidev/users-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// AuthRateLimiter throttles credential endpoints per IP with an in-process
// token bucket, independent of Redis availability.
type AuthRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
}

const (
	authLimiterTTL      = 30 * time.Minute
	authCleanupInterval = 5 * time.Minute
)

// NewAuthRateLimiter allows rps requests per second with the given burst per
// client IP and evicts idle entries in the background.
func NewAuthRateLimiter(rps float64, burst int) *AuthRateLimiter {
	l := &AuthRateLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go l.cleanupLoop()
	return l
}

func (l *AuthRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.entries[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (l *AuthRateLimiter) cleanupLoop() {
	for range time.Tick(authCleanupInterval) {
		cutoff := time.Now().Add(-authLimiterTTL)
		l.mu.Lock()
		for ip, entry := range l.entries {
			if entry.lastSeen.Before(cutoff) {
				delete(l.entries, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware rejects over-limit requests with 429.
func (l *AuthRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientip.RealClientIP(r)) {
			httperr.Write(w, &httperr.Error{
				Status:  http.StatusTooManyRequests,
				Message: "Too many attempts, please try again later.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
