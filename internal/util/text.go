package util

import "strings"

// NormalizeSpace collapses all runs of whitespace in value to single spaces
// and trims the result.
func NormalizeSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Snippet returns the first maxLen characters of value on a word boundary,
// with an ellipsis appended when the text was cut.
func Snippet(value string, maxLen int) string {
	value = NormalizeSpace(value)
	if maxLen <= 0 || len(value) <= maxLen {
		return value
	}

	cut := value[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
