// Package normalize holds the comparison rules shared by every dedup path:
// extraction filtering, duplicate cleanup and the lead sanitizer.
package normalize

import (
	"strings"
	"unicode"
)

const (
	// MinEmailLength is the exclusive lower bound for an email to take part in dedup
	MinEmailLength = 5
	// MinPhoneDigits is the inclusive lower bound for a phone to take part in dedup
	MinPhoneDigits = 8
)

// Email lowercases and trims an address
func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailKey returns the dedup key for an email, or "" when it is too short to be meaningful
func EmailKey(email string) string {
	key := Email(email)
	if len(key) <= MinEmailLength {
		return ""
	}
	return key
}

// Phone strips every non-digit character
func Phone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneKey returns the dedup key for a phone, or "" when it has fewer than MinPhoneDigits digits
func PhoneKey(phone string) string {
	key := Phone(phone)
	if len(key) < MinPhoneDigits {
		return ""
	}
	return key
}

// EmailKeyPtr is EmailKey for nullable columns
func EmailKeyPtr(email *string) string {
	if email == nil {
		return ""
	}
	return EmailKey(*email)
}

// PhoneKeyPtr is PhoneKey for nullable columns
func PhoneKeyPtr(phone *string) string {
	if phone == nil {
		return ""
	}
	return PhoneKey(*phone)
}

// NullIfEmpty trims s and returns nil for blank values and the "-"/"--" placeholders
func NullIfEmpty(s string) *string {
	trimmed := strings.TrimFunc(s, unicode.IsSpace)
	if trimmed == "" || trimmed == "-" || trimmed == "--" {
		return nil
	}
	return &trimmed
}

// NullIfEmptyPtr is NullIfEmpty for values that may already be nil
func NullIfEmptyPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return NullIfEmpty(*s)
}
