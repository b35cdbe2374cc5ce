package blog

import (
	"strings"
	"time"
)

// StripTags removes HTML markup, leaving plain text. Upstream excerpts
// and bodies arrive as rendered HTML.
func StripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Excerpt strips markup and truncates to maxLen characters, appending
// an ellipsis when the text was cut.
func Excerpt(s string, maxLen int) string {
	stripped := strings.TrimSpace(StripTags(s))
	if len(stripped) <= maxLen {
		return stripped
	}
	return strings.TrimSpace(stripped[:maxLen]) + "..."
}

// FormatDate renders a publish timestamp for display.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
