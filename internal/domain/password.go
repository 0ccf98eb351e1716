package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Password length limits. The lower bound counts characters; the upper bound
// is bcrypt's input limit in bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// commonPasswords is a short deny-list of passwords seen most often in breaches.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "welcome1": {}, "admin123": {},
	"letmein1": {}, "abc12345": {}, "trustno1": {}, "passw0rd": {}, "superman": {},
	"11111111": {}, "00000000": {}, "1q2w3e4r": {}, "asdfghjk": {}, "zaq12wsx": {},
}

// ValidatePassword checks a candidate password against the password policy.
// The attributes are user fields (username, email, name) the password must not resemble.
// It returns a ValidationError wrapping ErrInvalidPassword describing the first violation.
func ValidatePassword(password string, attributes ...string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return NewValidationError("password",
			"This password is too short. It must contain at least 8 characters.",
			ErrInvalidPassword)
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("password",
			"This password is too long. It must be at most 72 bytes.",
			ErrInvalidPassword)
	}

	lower := strings.ToLower(password)
	for _, attr := range attributes {
		if isSimilar(lower, attr) {
			return NewValidationError("password",
				"The password is too similar to your personal information.",
				ErrInvalidPassword)
		}
	}

	if _, common := commonPasswords[lower]; common {
		return NewValidationError("password", "This password is too common.", ErrInvalidPassword)
	}

	if isNumeric(password) {
		return NewValidationError("password", "This password is entirely numeric.", ErrInvalidPassword)
	}

	return nil
}

// isSimilar reports whether a lower-cased password contains, or is contained in,
// a user attribute. Email addresses are compared by their local part.
func isSimilar(password, attribute string) bool {
	attribute = strings.ToLower(strings.TrimSpace(attribute))
	if at := strings.IndexByte(attribute, '@'); at > 0 {
		attribute = attribute[:at]
	}
	if len(attribute) < 3 {
		return false
	}
	return strings.Contains(password, attribute) || strings.Contains(attribute, password)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
