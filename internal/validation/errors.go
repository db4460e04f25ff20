package validation

import "strings"

// Error codes reported to clients.
const (
	CodeRequired              = "Required"
	CodeInvalidEmail          = "InvalidEmail"
	CodeDuplicateEmail        = "DuplicateEmail"
	CodeTooLong               = "TooLong"
	CodeOutOfRange            = "OutOfRange"
	CodeInvalidValue          = "InvalidValue"
	CodePasswordTooShort      = "PasswordTooShort"
	CodePasswordRequiresDigit = "PasswordRequiresDigit"
	CodePasswordRequiresLower = "PasswordRequiresLower"
	CodePasswordRequiresUpper = "PasswordRequiresUpper"
)

// Error is one validation failure.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Errors collects validation failures. A nil or empty Errors means valid input.
type Errors []Error

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Description)
	}
	return strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// HasCode reports whether any failure carries the given code.
func (e Errors) HasCode(code string) bool {
	for _, err := range e {
		if err.Code == code {
			return true
		}
	}
	return false
}
