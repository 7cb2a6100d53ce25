package pipeline

import (
	"cmp"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Shell defaults, used when the caller leaves a field empty.
const (
	DefaultLang     = "zh-CN"
	DefaultTitle    = "转换结果"
	DefaultTOCTitle = "目录"
)

// ErrShellRender indicates the document template failed to parse or execute.
var ErrShellRender = errors.New("document shell render failed")

// ShellData holds the values substituted into the document template.
// CSS and Body are trusted: Body is the converter's own output and CSS comes
// from the embedded or user-supplied style sheet.
type ShellData struct {
	Lang     string
	Title    string
	Date     string
	CSS      string
	Body     string
	TOCTitle string
}

// shellView is the template-facing form of ShellData.
type shellView struct {
	Lang     string
	Title    string
	Date     string
	CSS      template.CSS
	Body     template.HTML
	TOCTitle string
}

// Shell wraps a converted body in a standalone HTML document.
type Shell struct {
	tmpl *template.Template
}

// NewShell parses the document template.
func NewShell(tmplContent string) (*Shell, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShellRender, err)
	}
	return &Shell{tmpl: tmpl}, nil
}

// Render executes the template. Empty Lang, Title and TOCTitle take their
// defaults.
func (s *Shell) Render(data ShellData) (string, error) {
	view := shellView{
		Lang:     cmp.Or(data.Lang, DefaultLang),
		Title:    cmp.Or(data.Title, DefaultTitle),
		Date:     data.Date,
		CSS:      template.CSS(data.CSS),   // #nosec G203 -- trusted style sheet
		Body:     template.HTML(data.Body), // #nosec G203 -- converter output
		TOCTitle: cmp.Or(data.TOCTitle, DefaultTOCTitle),
	}

	var buf strings.Builder
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShellRender, err)
	}
	return buf.String(), nil
}

// FirstHeading returns the text of the first heading outside code fences,
// or "" when there is none. Inline markup is left as written.
func FirstHeading(content string) string {
	inFence := false
	for _, line := range strings.Split(NormalizeLineEndings(content), "\n") {
		if strings.HasPrefix(line, fenceMarker) {
			inFence = !inFence
			continue
		}
		if inFence || Classify(line) != KindHeading {
			continue
		}
		if title := strings.TrimSpace(strings.TrimLeft(line, "#")); title != "" {
			return title
		}
	}
	return ""
}
