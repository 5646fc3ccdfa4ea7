package widgets

import (
	"strings"
	"unicode"
)

// FormatType selects the transform a text input applies to its buffer after
// every change, before validation runs.
type FormatType int

const (
	FormatNone FormatType = iota
	FormatUppercase
	FormatLowercase
	FormatCapitalize
	FormatCustom
)

// Formatter is a pure text transform supplied for FormatCustom.
type Formatter func(text string) string

// formatValue applies the selected transform.
func formatValue(t FormatType, custom Formatter, text string) string {
	switch t {
	case FormatUppercase:
		return strings.ToUpper(text)
	case FormatLowercase:
		return strings.ToLower(text)
	case FormatCapitalize:
		return capitalizeWords(text)
	case FormatCustom:
		if custom != nil {
			return custom(text)
		}
	}
	return text
}

// capitalizeWords upper-cases the first letter after every word boundary,
// leaving the rest of each word untouched.
func capitalizeWords(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	atBoundary := true
	for _, r := range text {
		if atBoundary {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(r)
		}
		atBoundary = unicode.IsSpace(r)
	}
	return b.String()
}
