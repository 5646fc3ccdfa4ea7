package widgets

import (
	"strconv"
	"strings"
)

// ValidationType selects the built-in validation rule a text input applies
// after every change.
type ValidationType int

const (
	ValidationNone ValidationType = iota
	ValidationText
	ValidationEmail
	ValidationNumber
	ValidationPassword
	ValidationURL
	ValidationCustom
)

// ValidationResult is the outcome of validating a text snapshot.
type ValidationResult struct {
	Valid   bool
	Message string
}

// Validator is a pure text check supplied for ValidationCustom.
type Validator func(text string) ValidationResult

const minPasswordLength = 8

// validateText applies the selected rule. The email check is a deliberately
// weak presence heuristic, not an address grammar.
func validateText(t ValidationType, custom Validator, text string) ValidationResult {
	switch t {
	case ValidationText:
		if text == "" {
			return ValidationResult{Valid: false, Message: "Text is required"}
		}
	case ValidationEmail:
		if !strings.Contains(text, "@") || !strings.Contains(text, ".") {
			return ValidationResult{Valid: false, Message: "Invalid email address"}
		}
	case ValidationNumber:
		if text == "" {
			return ValidationResult{Valid: false, Message: "Number is required"}
		}
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return ValidationResult{Valid: false, Message: "Invalid number"}
		}
	case ValidationPassword:
		if len(text) < minPasswordLength {
			return ValidationResult{Valid: false, Message: "Password must be at least 8 characters"}
		}
	case ValidationURL:
		if !strings.HasPrefix(text, "http://") && !strings.HasPrefix(text, "https://") {
			return ValidationResult{Valid: false, Message: "Invalid URL"}
		}
	case ValidationCustom:
		if custom != nil {
			return custom(text)
		}
	}
	return ValidationResult{Valid: true}
}
