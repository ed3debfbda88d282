package auth

import (
	"strings"
	"unicode"

	"EduPortal/internal/app_errors"
)

const minPasswordLength = 8

// A short list of passwords that are rejected outright. Checked after
// lowercasing.
var commonPasswords = map[string]struct{}{
	"password":   {},
	"password1":  {},
	"12345678":   {},
	"123456789":  {},
	"1234567890": {},
	"qwerty123":  {},
	"qwertyuiop": {},
	"letmein1":   {},
	"iloveyou1":  {},
	"admin123":   {},
	"welcome1":   {},
	"sunshine1":  {},
	"football1":  {},
	"princess1":  {},
	"baseball1":  {},
	"dragon123":  {},
	"monkey123":  {},
	"abc12345":   {},
	"trustno1":   {},
	"superman1":  {},
}

// validatePassword applies the platform's password strength rules:
// minimum length, not entirely numeric, not a known common password,
// and not containing (or contained in) the username or email local part.
func validatePassword(password, username, email string) *app_errors.ValidationError {
	verr := &app_errors.ValidationError{}

	if len(password) < minPasswordLength {
		verr.Add("password", "This password is too short. It must contain at least 8 characters.")
	}

	numeric := len(password) > 0
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		verr.Add("password", "This password is entirely numeric.")
	}

	lowered := strings.ToLower(password)
	if _, ok := commonPasswords[lowered]; ok {
		verr.Add("password", "This password is too common.")
	}

	if tooSimilar(lowered, strings.ToLower(username)) {
		verr.Add("password", "The password is too similar to the username.")
	}
	if local, _, found := strings.Cut(strings.ToLower(email), "@"); found && tooSimilar(lowered, local) {
		verr.Add("password", "The password is too similar to the email address.")
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func tooSimilar(password, attribute string) bool {
	if len(attribute) < 3 {
		return false
	}
	return strings.Contains(password, attribute) || strings.Contains(attribute, password)
}
