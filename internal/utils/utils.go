// Package utils provides small helpers shared across layers.
package utils

import (
	"fmt"
	"strings"
)

// EscapeMarkdown escapes user-supplied text so it cannot break the
// Markdown markup of an outgoing message.
func EscapeMarkdown(text string) string {
	var result strings.Builder
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '`':
			result.WriteByte('\\')
		}
		result.WriteRune(char)
	}
	return result.String()
}

// Money renders an amount the way it appears everywhere in the bot: $1.70.
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Truncate shortens s to max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
