package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"jo@x.com", "first.last@example.co.uk", "a+tag@domain.io"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "plainaddress", "@no-local.com", "no-domain@", "spaces in@mail.com", "no-tld@host"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	valid := []string{"+15551234567", "08012345678", "+44 7700 900123", "(555) 123-4567"}
	for _, phone := range valid {
		if err := ValidatePhone(phone); err != nil {
			t.Errorf("ValidatePhone(%q) = %v, want nil", phone, err)
		}
	}

	invalid := []string{"", "12345", "not-a-number", "+"}
	for _, phone := range invalid {
		if err := ValidatePhone(phone); err == nil {
			t.Errorf("ValidatePhone(%q) = nil, want error", phone)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("secret1"); err != nil {
		t.Errorf("ValidatePassword(long enough) = %v, want nil", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("ValidatePassword(short) = nil, want error")
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Jo@X.Com "); got != "jo@x.com" {
		t.Errorf("NormalizeEmail = %q, want %q", got, "jo@x.com")
	}
}
