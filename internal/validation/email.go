package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern is deliberately loose: something@something.tld without whitespace.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// MaxEmailLen is the longest accepted address after normalization.
const MaxEmailLen = 254

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Registration and login must both go through it or lookups diverge.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks an already normalized address.
func ValidateEmail(email string) Errors {
	if email == "" {
		return Errors{{Code: CodeRequired, Description: "email is required"}}
	}
	if len(email) > MaxEmailLen {
		return Errors{{Code: CodeTooLong, Description: fmt.Sprintf("email must not exceed %d characters", MaxEmailLen)}}
	}
	if !EmailPattern.MatchString(email) {
		return Errors{{Code: CodeInvalidEmail, Description: fmt.Sprintf("email '%s' is invalid", email)}}
	}
	return nil
}
