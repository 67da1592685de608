package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	keyLength   = 32
	memoryCost  = 64 * 1024
	parallelism = 2

	// DefaultTimeCost is the Argon2id work factor used when none is configured.
	DefaultTimeCost = 3
)

// ErrMalformedDigest is returned when a stored digest cannot be parsed.
// Callers must report it as an infrastructure failure, never as a mismatch.
var ErrMalformedDigest = errors.New("malformed password digest")

// Argon2Hasher hashes passwords with Argon2id. The time cost is the tunable
// work factor; memory and parallelism are fixed to keep digests comparable
// across deployments.
type Argon2Hasher struct {
	TimeCost uint32
}

func NewArgon2Hasher(timeCost uint32) *Argon2Hasher {
	if timeCost == 0 {
		timeCost = DefaultTimeCost
	}
	return &Argon2Hasher{TimeCost: timeCost}
}

// Hash derives a salted Argon2id digest in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=2$salt$hash
func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, h.TimeCost, memoryCost, parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memoryCost, h.TimeCost, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify recomputes the digest with the parameters encoded in hashedPassword
// and compares in constant time. A false result with a nil error means the
// password does not match; a non-nil error means the digest is unusable.
func (h *Argon2Hasher) Verify(password, hashedPassword string) (bool, error) {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrMalformedDigest
	}

	var version int
	if n, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || n != 1 || version != argon2.Version {
		return false, ErrMalformedDigest
	}

	var memory, timeCost uint32
	var threads uint8
	if n, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil || n != 3 {
		return false, ErrMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedDigest
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrMalformedDigest
	}
	// A truncated digest can decode cleanly; recomputing with an empty hash
	// segment would ask argon2 for a zero-length key.
	if len(salt) < saltLength || len(hash) == 0 {
		return false, ErrMalformedDigest
	}

	computed := argon2.IDKey([]byte(password), salt, timeCost, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(computed, hash) == 1, nil
}
