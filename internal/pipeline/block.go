package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the block construct that starts at a line.
type Kind int

// Block kinds in classification priority order. KindParagraph is the fallback.
const (
	KindCodeFence Kind = iota
	KindMathBlock
	KindHeading
	KindUnorderedList
	KindTable
	KindOrderedList
	KindBlockquote
	KindBlank
	KindParagraph
)

var kindNames = [...]string{
	KindCodeFence:     "code-fence",
	KindMathBlock:     "math-block",
	KindHeading:       "heading",
	KindUnorderedList: "unordered-list",
	KindTable:         "table",
	KindOrderedList:   "ordered-list",
	KindBlockquote:    "blockquote",
	KindBlank:         "blank",
	KindParagraph:     "paragraph",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Fragment is the HTML for one classified block, possibly spanning several
// output lines. Blank fragments have empty HTML.
type Fragment struct {
	Kind Kind
	HTML string
}

// Block markers.
const (
	fenceMarker = "```"
	mathDelim   = "$$"
)

// orderedItem matches an ordered list marker ("12. ") at the start of a
// trimmed line. The single whitespace character is part of the marker.
var orderedItem = regexp.MustCompile(`^\d+\.\s`)

// Classify returns the kind of block that starts at line.
// Predicates are tried in fixed priority order; the first match wins.
func Classify(line string) Kind {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, fenceMarker):
		return KindCodeFence
	case isSingleLineMath(trimmed), trimmed == mathDelim:
		return KindMathBlock
	case strings.HasPrefix(line, "#"):
		return KindHeading
	case isBullet(trimmed):
		return KindUnorderedList
	case isTableStart(line, trimmed):
		return KindTable
	case orderedItem.MatchString(trimmed):
		return KindOrderedList
	case strings.HasPrefix(trimmed, ">"):
		return KindBlockquote
	case trimmed == "":
		return KindBlank
	default:
		return KindParagraph
	}
}

func isSingleLineMath(trimmed string) bool {
	return len(trimmed) > 2*len(mathDelim) &&
		strings.HasPrefix(trimmed, mathDelim) &&
		strings.HasSuffix(trimmed, mathDelim)
}

func isBullet(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}

// isTableStart requires the first row alone to look like a full table row.
// Following rows only need to contain a pipe.
func isTableStart(line, trimmed string) bool {
	return strings.Contains(line, "|") &&
		strings.HasPrefix(trimmed, "|") &&
		strings.HasSuffix(trimmed, "|")
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, "   ") || strings.HasPrefix(line, "\t")
}

// breaksParagraph reports whether line ends a running paragraph.
// Tables and math lines do not: they are absorbed into the paragraph text.
func breaksParagraph(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" ||
		strings.HasPrefix(line, "#") ||
		isBullet(trimmed) ||
		orderedItem.MatchString(trimmed) ||
		strings.HasPrefix(trimmed, ">") ||
		strings.HasPrefix(line, fenceMarker)
}

// blockRule renders the block starting at lines[i] and returns the index of
// the first line it did not consume. The returned index is always > i.
type blockRule func(lines []string, i int) (Fragment, int)

// Parser turns a document into block fragments.
// A Parser holds no per-call state and is safe for concurrent use.
type Parser struct {
	code CodeRenderer
}

// NewParser creates a Parser. A nil CodeRenderer means plain escaping.
func NewParser(code CodeRenderer) *Parser {
	if code == nil {
		code = PlainCode{}
	}
	return &Parser{code: code}
}

// defaultParser backs the package-level Parse and Body helpers.
var defaultParser = NewParser(nil)

// Parse classifies content into fragments using plain code rendering.
func Parse(content string) []Fragment {
	return defaultParser.Parse(content)
}

// Body converts content into newline-joined body HTML using plain code rendering.
func Body(content string) string {
	return defaultParser.Body(content)
}

// Parse splits content into lines and classifies them into fragments in
// source order. It never fails: any line is at worst part of a paragraph.
func (p *Parser) Parse(content string) []Fragment {
	lines := strings.Split(NormalizeLineEndings(content), "\n")

	frags := make([]Fragment, 0, len(lines))
	for i := 0; i < len(lines); {
		frag, next := p.rule(Classify(lines[i]))(lines, i)
		if next <= i {
			next = i + 1
		}
		frags = append(frags, frag)
		i = next
	}
	return frags
}

// Body returns the fragments of content joined with newlines.
func (p *Parser) Body(content string) string {
	frags := p.Parse(content)
	parts := make([]string, len(frags))
	for i, f := range frags {
		parts[i] = f.HTML
	}
	return strings.Join(parts, "\n")
}

func (p *Parser) rule(k Kind) blockRule {
	switch k {
	case KindCodeFence:
		return p.codeFence
	case KindMathBlock:
		return mathBlock
	case KindHeading:
		return heading
	case KindUnorderedList:
		return unorderedList
	case KindTable:
		return table
	case KindOrderedList:
		return orderedList
	case KindBlockquote:
		return blockquote
	case KindBlank:
		return blank
	default:
		return paragraph
	}
}

// codeFence emits the fence content untouched by block or inline markup.
// An unterminated fence runs to the end of the document and is still closed.
func (p *Parser) codeFence(lines []string, i int) (Fragment, int) {
	lang := strings.TrimSpace(lines[i][len(fenceMarker):])

	j := i + 1
	for j < len(lines) && !strings.HasPrefix(lines[j], fenceMarker) {
		j++
	}

	out := make([]string, 0, j-i+1)
	out = append(out, `<pre><code class="language-`+EscapeHTML(lang)+`">`)
	out = append(out, p.code.RenderCode(lang, lines[i+1:j])...)
	out = append(out, "</code></pre>")

	next := j + 1
	if j == len(lines) {
		next = j
	}
	return Fragment{Kind: KindCodeFence, HTML: strings.Join(out, "\n")}, next
}

// mathBlock passes TeX through unescaped for MathJax to typeset.
func mathBlock(lines []string, i int) (Fragment, int) {
	trimmed := strings.TrimSpace(lines[i])
	if trimmed != mathDelim {
		return Fragment{Kind: KindMathBlock, HTML: mathDiv(trimmed)}, i + 1
	}

	j := i + 1
	for j < len(lines) && strings.TrimSpace(lines[j]) != mathDelim {
		j++
	}

	out := make([]string, 0, j-i+1)
	out = append(out, `<div class="math-block">`+mathDelim)
	out = append(out, lines[i+1:j]...)
	out = append(out, mathDelim+"</div>")

	next := j + 1
	if j == len(lines) {
		next = j
	}
	return Fragment{Kind: KindMathBlock, HTML: strings.Join(out, "\n")}, next
}

// mathDiv wraps a $$...$$ expression in the display math container.
func mathDiv(expr string) string {
	return `<div class="math-block">` + expr + `</div>`
}

// heading keeps the level uncapped: "#######" yields <h7>.
func heading(lines []string, i int) (Fragment, int) {
	line := lines[i]
	level := len(line) - len(strings.TrimLeft(line, "#"))
	title := strings.TrimSpace(line[level:])

	html := fmt.Sprintf(`<h%d id="%s">%s</h%d>`, level, Slug(title), FormatInline(title), level)
	return Fragment{Kind: KindHeading, HTML: html}, i + 1
}

func unorderedList(lines []string, i int) (Fragment, int) {
	out := []string{"<ul>"}
	j := i
	for ; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if !isBullet(trimmed) {
			break
		}
		out = append(out, "<li>"+FormatInline(trimmed[2:])+"</li>")
	}
	out = append(out, "</ul>")
	return Fragment{Kind: KindUnorderedList, HTML: strings.Join(out, "\n")}, j
}

// table renders a header row and optional body. A second row containing
// "---" is the separator. Rows are not checked for matching cell counts.
func table(lines []string, i int) (Fragment, int) {
	var rows []string
	j := i
	for ; j < len(lines) && strings.Contains(lines[j], "|"); j++ {
		rows = append(rows, strings.TrimSpace(lines[j]))
	}

	out := []string{"<table>", "<thead>", "<tr>"}
	for _, cell := range splitCells(rows[0]) {
		out = append(out, "<th>"+FormatInline(cell)+"</th>")
	}
	out = append(out, "</tr>", "</thead>")

	start := 1
	if len(rows) > 1 && strings.Contains(rows[1], "---") {
		start = 2
	}
	if len(rows) > start {
		out = append(out, "<tbody>")
		for _, row := range rows[start:] {
			out = append(out, "<tr>")
			for _, cell := range splitCells(row) {
				out = append(out, "<td>"+FormatInline(cell)+"</td>")
			}
			out = append(out, "</tr>")
		}
		out = append(out, "</tbody>")
	}
	out = append(out, "</table>")

	return Fragment{Kind: KindTable, HTML: strings.Join(out, "\n")}, j
}

// splitCells splits a row on pipes and drops the fields outside the
// bounding pipes. row always contains at least one pipe.
func splitCells(row string) []string {
	fields := strings.Split(row, "|")
	cells := fields[1 : len(fields)-1]
	for k, c := range cells {
		cells[k] = strings.TrimSpace(c)
	}
	return cells
}

// orderedList collects items and their indented continuation lines.
// Blank lines are consumed only when the list goes on after them; otherwise
// the list ends before the blank line, which stays a separator.
func orderedList(lines []string, i int) (Fragment, int) {
	out := []string{"<ol>"}
	j := i
	for {
		k := skipBlank(lines, j)
		if k == len(lines) {
			break
		}
		trimmed := strings.TrimSpace(lines[k])
		marker := orderedItem.FindString(trimmed)
		if marker == "" {
			break
		}

		parts := []string{FormatInline(trimmed[len(marker):])}
		j = k + 1
		for {
			k = skipBlank(lines, j)
			if k == len(lines) || !isIndented(lines[k]) {
				break
			}
			parts = append(parts, continuation(strings.TrimSpace(lines[k])))
			j = k + 1
		}
		out = append(out, "<li>"+strings.Join(parts, "")+"</li>")
	}
	out = append(out, "</ol>")
	return Fragment{Kind: KindOrderedList, HTML: strings.Join(out, "\n")}, j
}

// continuation renders one indented line inside an ordered list item.
func continuation(content string) string {
	if strings.HasPrefix(content, mathDelim) && strings.HasSuffix(content, mathDelim) {
		var expr string
		if len(content) >= 2*len(mathDelim) {
			expr = content[len(mathDelim) : len(content)-len(mathDelim)]
		}
		return mathDiv(mathDelim + expr + mathDelim)
	}
	return FormatInline(content)
}

// skipBlank returns the index of the first non-blank line at or after j.
func skipBlank(lines []string, j int) int {
	for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
		j++
	}
	return j
}

// blockquote emits each quoted line as its own paragraph in one container.
func blockquote(lines []string, i int) (Fragment, int) {
	out := []string{"<blockquote>"}
	j := i
	for ; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		text := strings.TrimSpace(trimmed[1:])
		out = append(out, "<p>"+FormatInline(text)+"</p>")
	}
	out = append(out, "</blockquote>")
	return Fragment{Kind: KindBlockquote, HTML: strings.Join(out, "\n")}, j
}

func blank(_ []string, i int) (Fragment, int) {
	return Fragment{Kind: KindBlank}, i + 1
}

// paragraph joins raw lines with single spaces, leading indentation included.
func paragraph(lines []string, i int) (Fragment, int) {
	j := i
	for j < len(lines) && !breaksParagraph(lines[j]) {
		j++
	}
	if j == i {
		j = i + 1
	}
	text := strings.Join(lines[i:j], " ")
	return Fragment{Kind: KindParagraph, HTML: "<p>" + FormatInline(text) + "</p>"}, j
}
