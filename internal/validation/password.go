package validation

import (
	"fmt"
	"unicode"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// ValidatePassword applies the password policy: at least MinPasswordLen
// characters with a digit, a lower-case and an upper-case letter.
// Every violated rule is reported, not just the first.
func ValidatePassword(password string) Errors {
	if password == "" {
		return Errors{{Code: CodeRequired, Description: "password is required"}}
	}

	var errs Errors
	if len([]rune(password)) < MinPasswordLen {
		errs = append(errs, Error{
			Code:        CodePasswordTooShort,
			Description: fmt.Sprintf("password must be at least %d characters", MinPasswordLen),
		})
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	if !hasDigit {
		errs = append(errs, Error{Code: CodePasswordRequiresDigit, Description: "password must have at least one digit ('0'-'9')"})
	}
	if !hasLower {
		errs = append(errs, Error{Code: CodePasswordRequiresLower, Description: "password must have at least one lowercase ('a'-'z')"})
	}
	if !hasUpper {
		errs = append(errs, Error{Code: CodePasswordRequiresUpper, Description: "password must have at least one uppercase ('A'-'Z')"})
	}

	return errs
}
