package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Math placeholders use Unicode Private Use Area characters so that no
// literal input text can collide with a token.
const (
	mathTokenStart = "\uE002" // U+E002: Private Use Area
	mathTokenEnd   = "\uE003" // U+E003: Private Use Area
)

// ImageStyle is the inline style applied to every <img> produced from
// ![alt](url). It mirrors the img rules of the default style sheet so images
// look the same when the document is rendered without it.
const ImageStyle = "max-width: 100%; height: auto; display: block; margin: 20px auto; " +
	"border: 1px solid #ddd; border-radius: 5px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);"

// Precompiled inline patterns, applied in declaration order.
var (
	// inlineMath only protects spans that look like math: an operator or
	// structural character, a backslash command, or a Greek letter. Plain
	// "$5 and $10" is left alone.
	inlineMath = regexp.MustCompile(`\$([^$]*(?:[+\-*/=<>^_{}\\]|\\[a-zA-Z]+|[α-ωΑ-Ω])[^$]*)\$`)

	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*]+)\*`)
	codePattern   = regexp.MustCompile("`([^`]+)`")
	imagePattern  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// mathSpan pairs a placeholder token with its restored form.
type mathSpan struct {
	token       string
	replacement string
}

// FormatInline rewrites inline markup in one line or joined paragraph:
// math, bold, italic, code spans, images and links, in that order.
// Math spans are swapped out for placeholders first so the other patterns
// cannot see inside them, then restored as \( ... \).
func FormatInline(text string) string {
	var spans []mathSpan

	text = inlineMath.ReplaceAllStringFunc(text, func(m string) string {
		token := mathTokenStart + strconv.Itoa(len(spans)) + mathTokenEnd
		inner := m[1 : len(m)-1]
		spans = append(spans, mathSpan{token: token, replacement: `\(` + inner + `\)`})
		return token
	})

	text = boldPattern.ReplaceAllString(text, "<strong>${1}</strong>")
	text = italicPattern.ReplaceAllString(text, "<em>${1}</em>")
	text = codePattern.ReplaceAllString(text, "<code>${1}</code>")
	text = imagePattern.ReplaceAllString(text, `<img src="${2}" alt="${1}" style="`+ImageStyle+`" />`)
	text = linkPattern.ReplaceAllString(text, `<a href="${2}">${1}</a>`)

	for _, s := range spans {
		text = strings.ReplaceAll(text, s.token, s.replacement)
	}
	return text
}
