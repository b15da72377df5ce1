package naming

import (
	"regexp"
	"strings"
)

var reservedChars = regexp.MustCompile(`[<>:"/\\|?*]`)

var separatorReplacer = strings.NewReplacer("/", "-", "\\", "-", ":", "-")

// Sanitize strips characters that are invalid in filesystem names from a
// single filename segment. Path separators and colons become dashes so that
// readable structure survives; the remaining reserved characters are dropped
// and surrounding whitespace is trimmed. Idempotent.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = separatorReplacer.Replace(text)
	text = reservedChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
