package models

import (
	"regexp"
	"strings"
)

// Email validation pattern: one @, a dot somewhere after it, no whitespace.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// htmlEscaper maps the five markup-significant characters to their entity
// forms in a single pass, so produced entities are never re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// IsValidEmail reports whether the address matches the accepted pattern
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// EscapeHTML replaces & < > " ' with their entity forms. Applied to every
// user-supplied field before storage and before interpolation into an email
// body, since mail clients render the HTML body.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
