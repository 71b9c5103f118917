package parser

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// plainText strips markup from OpenAPI prose and collapses whitespace so it
// can sit inside profile documentation strings.
func plainText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	cleaned := html.UnescapeString(strictPolicy.Sanitize(raw))
	return strings.Join(strings.Fields(cleaned), " ")
}

// slug lowercases a title into a dashed profile name.
func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plainText(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}

// useCaseName derives a PascalCase use case name from the operation id, or
// from method and path when the id is missing.
func useCaseName(operationID, method, path string) string {
	if name := pascal(operationID); name != "" {
		return name
	}
	return pascal(strings.ToLower(method) + " " + path)
}

// pascal upper-cases the first letter of every word and drops separators.
// Existing inner capitals are kept, so "getWeather" becomes "GetWeather".
func pascal(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			if b.Len() == 0 && unicode.IsDigit(r) {
				b.WriteByte('N')
			}
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
