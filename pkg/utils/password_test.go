package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher(1)

	digest, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(digest, "$argon2id$v=19$") {
		t.Fatalf("unexpected digest format: %q", digest)
	}

	ok, err := h.Verify("secret1", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = h.Verify("wrong-password", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected non-matching password to fail verification")
	}
}

func TestArgon2Hasher_SaltsDiffer(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher(1)

	d1, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	d2, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if d1 == d2 {
		t.Fatal("expected distinct salts to produce distinct digests")
	}
}

func TestArgon2Hasher_WorkFactorEncoded(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher(2)

	digest, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.Contains(digest, ",t=2,") {
		t.Fatalf("expected time cost in digest, got %q", digest)
	}

	// A hasher configured differently still verifies using the digest's own
	// parameters.
	other := NewArgon2Hasher(1)
	ok, err := other.Verify("secret1", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected verification with digest-encoded parameters")
	}
}

func TestArgon2Hasher_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := NewArgon2Hasher(1)

	for _, digest := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
		// Truncated hash segment: structurally valid but unusable.
		"$argon2id$v=19$m=65536,t=1,p=2$MDEyMzQ1Njc4OWFiY2RlZg$",
		// Salt shorter than the 16 bytes every digest is written with.
		"$argon2id$v=19$m=65536,t=3,p=2$c29tZXNhbHQ$aGFzaA",
		// Unknown PHC version must not be compared against.
		"$argon2id$v=18$m=65536,t=3,p=2$MDEyMzQ1Njc4OWFiY2RlZg$aGFzaA",
		"$argon2id$v=$m=65536,t=3,p=2$MDEyMzQ1Njc4OWFiY2RlZg$aGFzaA",
	} {
		_, err := h.Verify("secret1", digest)
		if !errors.Is(err, ErrMalformedDigest) {
			t.Fatalf("digest %q: expected ErrMalformedDigest, got %v", digest, err)
		}
	}
}
