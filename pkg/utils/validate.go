package utils

import (
	"regexp"
	"strings"
)

const MinPasswordLength = 6

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	// Mobile numbers: optional +, then 7-15 digits with common separators.
	phoneRegex = regexp.MustCompile(`^\+?[0-9(][0-9 .\-()]{5,17}[0-9]$`)
)

// ValidationError represents a validation error on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateEmail validates email address format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return &ValidationError{Field: "email", Message: "Please provide a valid email"}
	}
	return nil
}

// ValidatePhone validates mobile phone number format.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return &ValidationError{Field: "phone", Message: "Must be a valid phone number"}
	}
	return nil
}

// ValidatePassword enforces the minimum length policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
	}
	return nil
}

// NormalizeEmail converts an email to its canonical lowercase form for
// storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
