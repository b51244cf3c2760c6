// Package validation holds the input rules shared by signup and profile
// update handlers.
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

const (
	passwordMinLength = 12
	passwordMaxLength = 128
	usernameMinLength = 3
	usernameMaxLength = 30
	emailMaxLength    = 254
)

var (
	digitPattern    = regexp.MustCompile(`[0-9]`)
	specialPattern  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func containsRune(s string, match func(rune) bool) bool {
	for _, r := range s {
		if match(r) {
			return true
		}
	}
	return false
}

// ValidatePassword enforces length bounds plus at least one uppercase
// letter, one lowercase letter, one digit and one special character.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return fmt.Errorf("password must be at least %d characters long", passwordMinLength)
	}
	if len(password) > passwordMaxLength {
		return fmt.Errorf("password must not exceed %d characters", passwordMaxLength)
	}

	if !containsRune(password, unicode.IsUpper) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !containsRune(password, unicode.IsLower) {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !digitPattern.MatchString(password) {
		return fmt.Errorf("password must contain at least one digit")
	}
	if !specialPattern.MatchString(password) {
		return fmt.Errorf("password must contain at least one special character (!@#$%%^&*)")
	}

	return nil
}

// ValidateUsername allows letters, digits, underscores and hyphens, with
// neither end being punctuation.
func ValidateUsername(username string) error {
	if len(username) < usernameMinLength {
		return fmt.Errorf("username must be at least %d characters long", usernameMinLength)
	}
	if len(username) > usernameMaxLength {
		return fmt.Errorf("username must not exceed %d characters", usernameMaxLength)
	}

	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	first, last := username[0], username[len(username)-1]
	if first == '_' || first == '-' || last == '_' || last == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidateEmail does a shallow format check. Deliverability is proven by
// actually sending mail, not by a stricter regex.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > emailMaxLength {
		return fmt.Errorf("email must not exceed %d characters", emailMaxLength)
	}
	return nil
}
