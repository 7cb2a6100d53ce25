package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/alnah/go-md2html/internal/assets"
)

func loadDocumentTemplate(t *testing.T) string {
	t.Helper()
	tmpl, err := assets.NewEmbeddedLoader().LoadTemplate(assets.DocumentTemplateName)
	if err != nil {
		t.Fatalf("loading document template: %v", err)
	}
	return tmpl
}

// ---------------------------------------------------------------------------
// TestShell_Render - Document template substitution
// ---------------------------------------------------------------------------

func TestShell_Render(t *testing.T) {
	t.Parallel()

	shell, err := NewShell(loadDocumentTemplate(t))
	if err != nil {
		t.Fatalf("NewShell() error = %v", err)
	}

	t.Run("defaults fill empty fields", func(t *testing.T) {
		t.Parallel()

		got, err := shell.Render(ShellData{Body: "<p>x</p>"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		for _, want := range []string{
			`<html lang="` + DefaultLang + `">`,
			"<title>" + DefaultTitle + "</title>",
			"<p>x</p>",
			"tex-mml-chtml.js",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("Render() missing %q", want)
			}
		}
		if strings.Contains(got, `name="date"`) {
			t.Error("date meta emitted without a date")
		}
	})

	t.Run("body and css are not escaped", func(t *testing.T) {
		t.Parallel()

		got, err := shell.Render(ShellData{
			Body: `<h1 id="a">A &amp; B</h1>`,
			CSS:  "h1 > span { color: red; }",
		})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, `<h1 id="a">A &amp; B</h1>`) {
			t.Error("body was altered")
		}
		if !strings.Contains(got, "h1 > span { color: red; }") {
			t.Error("css was altered")
		}
	})

	t.Run("title is escaped", func(t *testing.T) {
		t.Parallel()

		got, err := shell.Render(ShellData{Title: "<script>"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, "<title>&lt;script&gt;</title>") {
			t.Error("title not escaped")
		}
	})

	t.Run("toc title becomes a js string", func(t *testing.T) {
		t.Parallel()

		got, err := shell.Render(ShellData{TOCTitle: "Contents"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !strings.Contains(got, `tocTitle.textContent = "Contents";`) {
			t.Error("toc title not emitted as a quoted string")
		}
	})

	t.Run("date and lang", func(t *testing.T) {
		t.Parallel()

		got, err := shell.Render(ShellData{Lang: "en", Date: "2026-10-15"})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		doc, err := html.Parse(strings.NewReader(got))
		if err != nil {
			t.Fatalf("parsing output: %v", err)
		}
		if n := cascadia.MustCompile(`html[lang="en"]`).MatchFirst(doc); n == nil {
			t.Error("lang attribute not set")
		}
		if n := cascadia.MustCompile(`meta[name="date"][content="2026-10-15"]`).MatchFirst(doc); n == nil {
			t.Error("date meta not emitted")
		}
	})
}

func TestNewShell_InvalidTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewShell("{{.Body")
	if !errors.Is(err, ErrShellRender) {
		t.Errorf("NewShell() error = %v, want ErrShellRender", err)
	}
}

func TestShell_Render_ExecError(t *testing.T) {
	t.Parallel()

	shell, err := NewShell("{{.Missing}}")
	if err != nil {
		t.Fatalf("NewShell() error = %v", err)
	}
	_, err = shell.Render(ShellData{})
	if !errors.Is(err, ErrShellRender) {
		t.Errorf("Render() error = %v, want ErrShellRender", err)
	}
}

func TestFirstHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"first heading", "intro\n## Second\n# First", "Second"},
		{"none", "just text", ""},
		{"skips fenced heading", "```\n# not this\n```\n# Real", "Real"},
		{"skips empty heading", "#\n# Named", "Named"},
		{"bom prefixed", "\uFEFF# Title", "Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FirstHeading(tt.content); got != tt.want {
				t.Errorf("FirstHeading(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
