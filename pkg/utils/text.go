package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var commentPolicy = bluemonday.StrictPolicy()

// NormalizeSubject trims and NFC-normalizes a subject name so that visually
// identical names typed on different keyboards compare equal.
func NormalizeSubject(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// SanitizeComment strips every HTML tag from free text. Entities escaped by the
// policy are decoded again since comments are stored as plain text.
func SanitizeComment(s string) string {
	return strings.TrimSpace(html.UnescapeString(commentPolicy.Sanitize(s)))
}
