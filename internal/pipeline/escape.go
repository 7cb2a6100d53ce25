package pipeline

import "strings"

// codeEscaper replaces the five HTML-special characters with named references.
// Replacer scans once, so entities it introduces are never re-escaped.
var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for verbatim display inside a fenced code block.
// Unlike html.EscapeString, quotes use &quot; and &#39;.
func EscapeHTML(text string) string {
	return codeEscaper.Replace(text)
}
