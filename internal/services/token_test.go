package services

import (
	"errors"
	"testing"
	"time"
)

func TestTokenIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	tok, err := svc.Issue("user-123", "jo@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}

	identity, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if identity.UserID != "user-123" {
		t.Fatalf("userID mismatch: got %q want %q", identity.UserID, "user-123")
	}
	if identity.Email != "jo@x.com" {
		t.Fatalf("email mismatch: got %q want %q", identity.Email, "jo@x.com")
	}
}

func TestTokenVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", -1*time.Second)

	tok, err := svc.Issue("u1", "a@b.co")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenVerify_SecretRotation(t *testing.T) {
	t.Parallel()

	issued := NewTokenService("old-secret", time.Hour)
	rotated := NewTokenService("new-secret", time.Hour)

	tok, err := issued.Issue("u2", "a@b.co")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = rotated.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after rotation, got %v", err)
	}
}

func TestTokenVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("k", time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
