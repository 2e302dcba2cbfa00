// Package textutil provides text preparation helpers for the signal
// providers: markup stripping, whitespace normalization, and truncation.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	markdownPattern = regexp.MustCompile("[*_~`#>]+")
)

// StripMarkup removes HTML tags and markdown decoration from text,
// keeping the visible content.
func StripMarkup(text string) string {
	text = tagPattern.ReplaceAllString(text, " ")
	text = markdownPattern.ReplaceAllString(text, " ")
	text = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	).Replace(text)
	return text
}

// CollapseWhitespace replaces runs of whitespace (including newlines) with
// a single space and trims the ends.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Normalize strips markup and collapses whitespace in one pass.
func Normalize(text string) string {
	return CollapseWhitespace(StripMarkup(text))
}

// Truncate cuts text to at most maxLen bytes without splitting a UTF-8
// sequence.
func Truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 0 {
		return ""
	}
	cut := text[:maxLen]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
