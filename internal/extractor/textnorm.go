package extractor

import (
	"regexp"
	"strings"
)

var (
	// Case-insensitive so that CleanText stays idempotent: the output is
	// lowercased, so a second pass must strip the same tokens.
	urlPattern        = regexp.MustCompile(`(?i)http\S+|www\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText normalizes social media text for matching: URL-like tokens are
// removed, whitespace runs collapse to a single space, and the result is
// trimmed and lowercased. Empty input yields the empty string. CleanText is
// total and idempotent.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = urlPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}
