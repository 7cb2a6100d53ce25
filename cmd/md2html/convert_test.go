package main

// Notes:
// - runMain is driven end to end with temp directories and an injected
//   Environment. PDF export needs Chrome, so only its validation failures are
//   exercised here; the happy path is covered by the library tests.
// - Tests pass absolute source paths, so none of them depends on the
//   working directory except TestResolveSource_Default.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type testEnvironment struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(vars map[string]string) *testEnvironment {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	var environ []string
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	return &testEnvironment{
		Environment: &Environment{
			Now:        func() time.Time { return fixedNow },
			Stdout:     stdout,
			Stderr:     stderr,
			Getenv:     mapGetenv(vars),
			Environ:    func() []string { return environ },
			IsTerminal: func() bool { return false },
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestRunMain - End to end
// ---------------------------------------------------------------------------

func TestRunMain_ConvertsNextToSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "report.md"), "# Results\n\n$$E = mc^2$$\n")
	env := newTestEnv(nil)

	if code := runMain(context.Background(), []string{src}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
	}

	html := readFile(t, filepath.Join(dir, "report.html"))
	for _, want := range []string{`<h1 id="results">Results</h1>`, `<div class="math-block">$$E = mc^2$$</div>`, "<title>Results</title>"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}

	out := env.stdout.String()
	if !strings.Contains(out, "Input: "+src) {
		t.Errorf("banner missing input path: %q", out)
	}
	if !strings.Contains(out, "Created "+filepath.Join(dir, "report.html")) {
		t.Errorf("success line missing: %q", out)
	}
	if strings.Contains(out, "Ctrl+P") {
		t.Error("guide printed without a terminal")
	}
}

func TestRunMain_AppendsMarkdownExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.md"), "text")
	env := newTestEnv(nil)

	if code := runMain(context.Background(), []string{filepath.Join(dir, "notes")}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.html")); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunMain_GuideOnTerminal(t *testing.T) {
	t.Parallel()

	src := writeFile(t, filepath.Join(t.TempDir(), "a.md"), "a")
	env := newTestEnv(nil)
	env.IsTerminal = func() bool { return true }

	if code := runMain(context.Background(), []string{src}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
	}
	if !strings.Contains(env.stdout.String(), "Ctrl+P") {
		t.Error("guide not printed on a terminal")
	}
}

func TestRunMain_Quiet(t *testing.T) {
	t.Parallel()

	src := writeFile(t, filepath.Join(t.TempDir(), "a.md"), "a")
	env := newTestEnv(map[string]string{"MD2HTML_TYPO": "x"})
	env.IsTerminal = func() bool { return true }

	if code := runMain(context.Background(), []string{"-q", src}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
	}
	if env.stdout.Len() != 0 || env.stderr.Len() != 0 {
		t.Errorf("quiet run wrote stdout=%q stderr=%q", env.stdout, env.stderr)
	}
}

func TestRunMain_OutputOptions(t *testing.T) {
	t.Parallel()

	t.Run("explicit file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := writeFile(t, filepath.Join(dir, "a.md"), "# A")
		dst := filepath.Join(dir, "custom.html")
		env := newTestEnv(nil)

		if code := runMain(context.Background(), []string{"-o", dst, src}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
		}
		if _, err := os.Stat(dst); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("directory created", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := writeFile(t, filepath.Join(dir, "a.md"), "# A")
		outDir := filepath.Join(dir, "build", "html")
		env := newTestEnv(nil)

		if code := runMain(context.Background(), []string{"--output", outDir, src}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
		}
		if _, err := os.Stat(filepath.Join(outDir, "a.html")); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("env output dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := writeFile(t, filepath.Join(dir, "a.md"), "# A")
		outDir := filepath.Join(dir, "out")
		env := newTestEnv(map[string]string{"MD2HTML_OUTPUT_DIR": outDir})

		if code := runMain(context.Background(), []string{src}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
		}
		if _, err := os.Stat(filepath.Join(outDir, "a.html")); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})
}

func TestRunMain_FlagsReachDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "a.md"), "# Heading\n\n```go\nfunc main() {}\n```")
	css := writeFile(t, filepath.Join(dir, "extra.css"), ".extra-rule { color: teal; }")
	env := newTestEnv(nil)

	args := []string{
		"--title", "Override", "--lang", "en", "--date", "auto", "--toc-title", "Contents",
		"--style", "plain", "--css", css, "--highlight", "--theme", "monokai", src,
	}
	if code := runMain(context.Background(), args, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
	}

	html := readFile(t, filepath.Join(dir, "a.html"))
	for _, want := range []string{
		"<title>Override</title>",
		`<html lang="en">`,
		`content="2026-10-15"`,
		`"Contents"`,
		".extra-rule { color: teal; }",
		".chroma",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunMain_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "a.md"), "# A")
	cfgPath := writeFile(t, filepath.Join(dir, "md2html.yaml"), "document:\n  title: From Config\n  lang: fr\n")
	env := newTestEnv(nil)

	if code := runMain(context.Background(), []string{"-c", cfgPath, "--lang", "de", src}, env.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, env.stderr)
	}
	html := readFile(t, filepath.Join(dir, "a.html"))
	if !strings.Contains(html, "<title>From Config</title>") {
		t.Error("config title not applied")
	}
	if !strings.Contains(html, `<html lang="de">`) {
		t.Error("flag did not override config lang")
	}
}

func TestRunMain_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setup      func(t *testing.T, dir string) []string
		wantCode   int
		wantStderr []string
	}{
		{
			name: "missing source lists candidates",
			setup: func(t *testing.T, dir string) []string {
				writeFile(t, filepath.Join(dir, "other.md"), "x")
				writeFile(t, filepath.Join(dir, "notes.txt"), "x")
				return []string{filepath.Join(dir, "missing.md")}
			},
			wantCode:   ExitIO,
			wantStderr: []string{"source file not found", "hint: available: other.md"},
		},
		{
			name: "too many sources",
			setup: func(t *testing.T, dir string) []string {
				return []string{"a.md", "b.md"}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"at most one source"},
		},
		{
			name: "unknown flag",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--frobnicate"}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"Usage: md2html"},
		},
		{
			name: "unknown style",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--style", "neon", writeFile(t, filepath.Join(dir, "a.md"), "a")}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"hint: available: default, plain"},
		},
		{
			name: "unknown theme",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--theme", "no-such-theme", writeFile(t, filepath.Join(dir, "a.md"), "a")}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"hint: try github"},
		},
		{
			name: "invalid page size",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--pdf", "-p", "a3", writeFile(t, filepath.Join(dir, "a.md"), "a")}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"pdf.page.size"},
		},
		{
			name: "invalid timeout",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--timeout=-3s", writeFile(t, filepath.Join(dir, "a.md"), "a")}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"invalid timeout"},
		},
		{
			name: "missing config",
			setup: func(t *testing.T, dir string) []string {
				return []string{"-c", filepath.Join(dir, "none.yaml"), writeFile(t, filepath.Join(dir, "a.md"), "a")}
			},
			wantCode:   ExitUsage,
			wantStderr: []string{"config file not found", "hint: use --config"},
		},
		{
			name: "missing extra css",
			setup: func(t *testing.T, dir string) []string {
				return []string{"--css", filepath.Join(dir, "none.css"), writeFile(t, filepath.Join(dir, "a.md"), "a")}
			},
			wantCode:   ExitIO,
			wantStderr: []string{"failed to read CSS file"},
		},
		{
			name: "unwritable output",
			setup: func(t *testing.T, dir string) []string {
				src := writeFile(t, filepath.Join(dir, "a.md"), "a")
				return []string{"-o", filepath.Join(dir, "no", "dir", "a.html"), src}
			},
			wantCode:   ExitIO,
			wantStderr: []string{"hint: check the output directory"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			args := tt.setup(t, t.TempDir())

			code := runMain(context.Background(), args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr = %s)", code, tt.wantCode, env.stderr)
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(env.stderr.String(), want) {
					t.Errorf("stderr missing %q:\n%s", want, env.stderr)
				}
			}
		})
	}
}

func TestRunMain_HelpAndVersion(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	if code := runMain(context.Background(), []string{"--help"}, env.Environment); code != ExitSuccess {
		t.Errorf("--help exit = %d", code)
	}
	if !strings.Contains(env.stdout.String(), "Usage: md2html") {
		t.Errorf("--help output = %q", env.stdout)
	}

	env = newTestEnv(nil)
	if code := runMain(context.Background(), []string{"--version"}, env.Environment); code != ExitSuccess {
		t.Errorf("--version exit = %d", code)
	}
	if got := env.stdout.String(); got != "md2html "+Version+"\n" {
		t.Errorf("--version output = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestResolve* - Source, output and timeout resolution
// ---------------------------------------------------------------------------

func TestResolveSource_Default(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	got := resolveSource(nil, config.DefaultConfig())
	if filepath.Base(got) != defaultSource || !filepath.IsAbs(got) {
		t.Errorf("resolveSource() = %q, want absolute %s", got, defaultSource)
	}

	cfg := config.DefaultConfig()
	cfg.Input.Default = "weekly"
	if got := resolveSource(nil, cfg); filepath.Base(got) != "weekly.md" {
		t.Errorf("resolveSource(config) = %q, want weekly.md", got)
	}
	if got := resolveSource([]string{"x.markdown"}, cfg); filepath.Base(got) != "x.markdown" {
		t.Errorf("resolveSource(arg) = %q, want x.markdown", got)
	}
}

func TestResolveOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")

	tests := []struct {
		name, flag, cfgDir, want string
	}{
		{"nothing set", "", "", ""},
		{"html file", filepath.Join(dir, "x.html"), "", filepath.Join(dir, "x.html")},
		{"htm file", filepath.Join(dir, "x.HTM"), "", filepath.Join(dir, "x.HTM")},
		{"flag dir", filepath.Join(dir, "f"), "", filepath.Join(dir, "f", "doc.html")},
		{"config dir", "", filepath.Join(dir, "c"), filepath.Join(dir, "c", "doc.html")},
		{"flag beats config", filepath.Join(dir, "f2"), filepath.Join(dir, "c2"), filepath.Join(dir, "f2", "doc.html")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutput(src, tt.flag, tt.cfgDir)
			if err != nil {
				t.Fatalf("resolveOutput() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveOutput_Unwritable(t *testing.T) {
	t.Parallel()

	file := writeFile(t, filepath.Join(t.TempDir(), "plain"), "x")
	_, err := resolveOutput("a.md", filepath.Join(file, "sub"), "")
	if !errors.Is(err, md2html.ErrDestinationUnwritable) {
		t.Errorf("resolveOutput() error = %v, want ErrDestinationUnwritable", err)
	}
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"unset", "", 0, 0, false},
		{"env only", "", time.Minute, time.Minute, false},
		{"flag wins", "45s", time.Minute, 45 * time.Second, false},
		{"unparsable", "soon", 0, 0, true},
		{"zero", "0s", 0, 0, true},
		{"negative", "-1m", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("resolveTimeout() error = %v, want ErrInvalidTimeout", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("resolveTimeout() = %v, %v, want %v", got, err, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags / TestPDFOptions - Config assembly
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Document.Title = "Config Title"
	cfg.Style.Name = "default"

	f := &cliFlags{}
	f.document.lang = "en"
	f.code.theme = "dracula"
	f.pdf.footerPageNumber = true
	f.pdf.margin = 1
	mergeFlags(f, cfg)

	if cfg.Document.Title != "Config Title" {
		t.Errorf("unset flag overwrote title: %q", cfg.Document.Title)
	}
	if cfg.Style.Name != "default" {
		t.Errorf("unset flag overwrote style: %q", cfg.Style.Name)
	}
	if cfg.Document.Lang != "en" {
		t.Errorf("Lang = %q, want en", cfg.Document.Lang)
	}
	if !cfg.Code.Highlight || cfg.Code.Theme != "dracula" {
		t.Errorf("theme flag should enable highlighting: %+v", cfg.Code)
	}
	if !cfg.PDF.Footer.Enabled || !cfg.PDF.Footer.PageNumber {
		t.Errorf("footer = %+v, want enabled with page number", cfg.PDF.Footer)
	}
	if cfg.PDF.Page.Margin != 1 {
		t.Errorf("Margin = %v, want 1", cfg.PDF.Page.Margin)
	}
	if cfg.PDF.Enabled {
		t.Error("PDF enabled without --pdf")
	}
}

func TestPDFOptions(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		if got := pdfOptions(config.DefaultConfig()); got != nil {
			t.Errorf("pdfOptions() = %+v, want nil", got)
		}
	})

	t.Run("defaults filled", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.PDF.Enabled = true
		cfg.PDF.Page.Size = "a4"

		got := pdfOptions(cfg)
		want := md2html.PageSettings{Size: "a4", Orientation: md2html.OrientationPortrait, Margin: md2html.DefaultMargin}
		if *got.Page != want {
			t.Errorf("Page = %+v, want %+v", *got.Page, want)
		}
		if got.Footer != nil {
			t.Errorf("Footer = %+v, want nil", got.Footer)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("footer", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.PDF.Enabled = true
		cfg.PDF.Footer = config.FooterConfig{Enabled: true, PageNumber: true, Text: "Draft", Position: "left"}

		got := pdfOptions(cfg)
		want := md2html.Footer{Position: "left", ShowPageNumber: true, Text: "Draft"}
		if got.Footer == nil || *got.Footer != want {
			t.Errorf("Footer = %+v, want %+v", got.Footer, want)
		}
	})
}

func TestConverterOptions(t *testing.T) {
	t.Parallel()

	if got := converterOptions(config.DefaultConfig(), 0); len(got) != 0 {
		t.Errorf("default config produced %d options", len(got))
	}

	cfg := config.DefaultConfig()
	cfg.Style.Name = "plain"
	cfg.Assets.BasePath = "/a"
	cfg.Code.Highlight = true
	cfg.Document.Lang = "en"
	cfg.TOC.Title = "Contents"
	if got := converterOptions(cfg, time.Minute); len(got) != 6 {
		t.Errorf("converterOptions() = %d options, want 6", len(got))
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{context.DeadlineExceeded, "--timeout"},
		{md2html.ErrDestinationUnwritable, "writable"},
		{md2html.ErrStyleNotFound, "default, plain"},
		{md2html.ErrInvalidTheme, "monokai"},
		{errors.New("other"), ""},
	}
	for _, tt := range tests {
		got := hintFor(tt.err)
		if tt.want == "" {
			if got != "" {
				t.Errorf("hintFor(%v) = %q, want empty", tt.err, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("hintFor(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}
