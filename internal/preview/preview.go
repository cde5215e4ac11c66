// Package preview shortens raw response bodies for display.
package preview

import "strings"

// DefaultMaxLength is the preview size used when none is configured.
const DefaultMaxLength = 800

// Ellipsis marks a truncated preview.
const Ellipsis = "…"

// Preview trims text and cuts it to maxLength runes, appending Ellipsis when
// anything was dropped. Lengths are counted in runes so multi-byte text is
// never split mid-character. A non-positive maxLength selects DefaultMaxLength.
func Preview(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) <= maxLength {
		return trimmed
	}
	return string(runes[:maxLength]) + Ellipsis
}
