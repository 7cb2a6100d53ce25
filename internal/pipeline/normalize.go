package pipeline

import (
	"regexp"
	"strings"
)

// byteOrderMark is stripped so a BOM-prefixed "# Title" still reads as a heading.
const byteOrderMark = "\uFEFF"

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n and drops a leading BOM.
func NormalizeLineEndings(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	return crlfOrCR.ReplaceAllString(content, "\n")
}
