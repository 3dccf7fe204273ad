package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict is a cached bluemonday policy that removes all HTML tags and attributes.
// Safe for concurrent use as bluemonday.Policy is read-only after build.
// Never call mutating helpers (AddAttr, AllowElements, ...) on it after init.
var strict = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true) // prevents word concatenation
	return p
}()

// Clean strips all HTML from user-supplied note text and normalizes whitespace.
// Note titles and content must pass through Clean before hitting the DB;
// repositories assume already-sanitized input.
//
// Examples:
//   - "<script>alert('xss')</script>Hello" -> "Hello"
//   - "<p>Hello <b>world</b></p>" -> "Hello world"
//   - "**markdown** text" -> "**markdown** text" (preserved)
func Clean(s string) string {
	sanitized := strict.Sanitize(s)
	sanitized = strings.TrimSpace(sanitized)

	// Unescape HTML entities first to handle &#13; etc. as single chars
	sanitized = html.UnescapeString(sanitized)

	// Non-breaking spaces break substring search, normalize them away
	sanitized = strings.ReplaceAll(sanitized, "\u00a0", " ")

	// Collapse runs of spaces while preserving newlines
	lines := strings.Split(sanitized, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
