package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightTheme is the chroma style used when none is configured.
const DefaultHighlightTheme = "github"

// ErrUnknownTheme indicates the requested chroma style does not exist.
var ErrUnknownTheme = errors.New("unknown highlight theme")

// CodeRenderer renders the content lines of a fenced code block.
// The returned lines go between the <pre><code> wrapper lines.
type CodeRenderer interface {
	RenderCode(lang string, lines []string) []string
}

// PlainCode escapes each line and emits it verbatim.
type PlainCode struct{}

// RenderCode escapes every line once.
func (PlainCode) RenderCode(_ string, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = EscapeHTML(l)
	}
	return out
}

// ChromaCode highlights code with chroma using CSS classes.
// Unknown languages fall back to plain escaping.
type ChromaCode struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaCode creates a highlighter for the named chroma style.
func NewChromaCode(theme string) (*ChromaCode, error) {
	if theme == "" {
		theme = DefaultHighlightTheme
	}
	// styles.Get falls back silently, so look the name up directly.
	style, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return &ChromaCode{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}, nil
}

// RenderCode tokenises the block as a whole so multi-line constructs
// (strings, comments) highlight correctly, then splits back into lines.
func (c *ChromaCode) RenderCode(lang string, lines []string) []string {
	lexer := lexers.Get(lang)
	if lang == "" || lexer == nil {
		return PlainCode{}.RenderCode(lang, lines)
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return PlainCode{}.RenderCode(lang, lines)
	}

	var buf bytes.Buffer
	if err := c.formatter.Format(&buf, c.style, it); err != nil {
		return PlainCode{}.RenderCode(lang, lines)
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

// CSS returns the style sheet for the configured chroma style.
func (c *ChromaCode) CSS() (string, error) {
	var buf bytes.Buffer
	if err := c.formatter.WriteCSS(&buf, c.style); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
