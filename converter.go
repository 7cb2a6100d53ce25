package md2html

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Converter turns Markdown into standalone HTML documents and, on request,
// PDFs. Create with NewConverter and call Close when done.
//
// HTML conversion is safe for concurrent use. PDF rendering shares one
// browser and is serialized.
type Converter struct {
	cfg    converterConfig
	loader *assets.AssetResolver
	parser *pipeline.Parser
	shell  *pipeline.Shell
	css    string // style sheet plus highlight rules
	pdf    pdfConverter
}

// NewConverter creates a Converter. Style, template and highlight theme are
// resolved here, so a bad option fails now rather than on every Convert.
// No browser is started until a PDF is requested.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{cfg: converterConfig{timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}

	loader, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.loader = loader

	if c.css, err = c.resolveStyle(); err != nil {
		return nil, err
	}

	var code pipeline.CodeRenderer
	if c.cfg.highlight {
		chroma, err := pipeline.NewChromaCode(c.cfg.theme)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
		}
		highlightCSS, err := chroma.CSS()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
		}
		c.css += "\n" + highlightCSS
		code = chroma
	}
	c.parser = pipeline.NewParser(code)

	tmpl, err := c.loader.LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	if c.shell, err = pipeline.NewShell(tmpl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	if c.pdf == nil {
		c.pdf = newRodConverter(c.cfg.timeout)
	}
	return c, nil
}

// Convert renders input into a full HTML document, and into a PDF when
// input.PDF is set. Markdown never fails to parse; errors come from the
// document template, PDF options, the browser, or ctx.
// Internal panics are recovered and returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.PDF.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body := c.parser.Body(input.Markdown)

	css := c.css
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	doc, err := c.shell.Render(pipeline.ShellData{
		Lang:     c.cfg.lang,
		Title:    cmp.Or(input.Title, pipeline.FirstHeading(input.Markdown)),
		Date:     input.Date,
		CSS:      css,
		Body:     body,
		TOCTitle: c.cfg.tocTitle,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	res := &ConvertResult{HTML: []byte(doc)}
	if input.PDF == nil {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	printable, err := pipeline.RebaseLinks(doc, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("rewriting relative paths: %w", err)
	}
	if res.PDF, err = c.pdf.ToPDF(ctx, printable, input.PDF); err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return res, nil
}

// ConvertFile reads src, converts it, and writes the HTML to dst. An empty
// dst means src with its extension replaced by .html. When input.PDF is set
// the PDF is written next to dst with a .pdf extension. input.Markdown is
// replaced by the file content; an empty input.SourceDir defaults to the
// directory of src.
func (c *Converter) ConvertFile(ctx context.Context, src, dst string, input Input) (*FileResult, error) {
	start := time.Now()

	data, err := os.ReadFile(src) // #nosec G304 -- user-selected source
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrSourceUnreadable, src)
	}

	input.Markdown = string(data)
	if input.SourceDir == "" {
		input.SourceDir = filepath.Dir(src)
	}
	if dst == "" {
		dst = DefaultOutputPath(src, ".html")
	}

	res, err := c.Convert(ctx, input)
	if err != nil {
		return nil, err
	}

	out := &FileResult{HTMLPath: dst}
	if err := writeOutput(dst, res.HTML); err != nil {
		return nil, err
	}
	if res.PDF != nil {
		out.PDFPath = fileutil.ReplaceExt(dst, ".pdf")
		if err := writeOutput(out.PDFPath, res.PDF); err != nil {
			return nil, err
		}
	}
	out.Duration = time.Since(start)
	return out, nil
}

// Close releases the browser, if one was started.
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

// Styles lists the built-in style names.
func (c *Converter) Styles() []string {
	return c.loader.Styles()
}

// resolveStyle turns the style option into CSS text.
func (c *Converter) resolveStyle() (string, error) {
	style := cmp.Or(c.cfg.style, assets.DefaultStyleName)

	switch {
	case fileutil.IsFilePath(style):
		content, err := os.ReadFile(style) // #nosec G304 -- user-selected style
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStyleNotFound, err)
		}
		return string(content), nil
	case strings.Contains(style, "{"):
		return style, nil
	}

	css, err := c.loader.LoadStyle(style)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, style)
		}
		return "", fmt.Errorf("loading style %q: %w", style, err)
	}
	return css, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- documents are meant to be shared
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	return nil
}

// DefaultOutputPath returns src with its extension replaced by ext.
func DefaultOutputPath(src, ext string) string {
	return fileutil.ReplaceExt(src, ext)
}

// Body converts content into body HTML only: the newline-joined fragments
// without the document shell. Fenced code is escaped, not highlighted.
func Body(content string) string {
	return pipeline.Body(content)
}

// defaultConverter backs Document.
var defaultConverter = sync.OnceValues(func() (*Converter, error) {
	return NewConverter()
})

// Document converts content into a full HTML document with the default
// style and template.
func Document(content string) (string, error) {
	c, err := defaultConverter()
	if err != nil {
		return "", err
	}
	res, err := c.Convert(context.Background(), Input{Markdown: content})
	if err != nil {
		return "", err
	}
	return string(res.HTML), nil
}
