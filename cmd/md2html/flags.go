package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds output verbosity and config selection.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title string
	lang  string
	date  string
}

// styleFlags holds style sheet and asset flags.
type styleFlags struct {
	style     string // name, path, or CSS text
	css       string // extra CSS file appended after the style
	assetPath string
}

// codeFlags holds code highlighting flags.
type codeFlags struct {
	highlight bool
	theme     string
}

// pdfFlags holds PDF export flags.
type pdfFlags struct {
	enabled          bool
	size             string
	orientation      string
	margin           float64
	footerText       string
	footerPosition   string
	footerPageNumber bool
}

// cliFlags holds every md2html flag.
type cliFlags struct {
	common   commonFlags
	output   string
	timeout  string
	tocTitle string
	document documentFlags
	style    styleFlags
	code     codeFlags
	pdf      pdfFlags
	version  bool
	help     bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first heading)")
	fs.StringVar(&f.lang, "lang", "", "html lang attribute (default zh-CN)")
	fs.StringVar(&f.date, "date", "", "document date (\"auto\" = today)")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "style name, CSS file path, or CSS text")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.BoolVar(&f.highlight, "highlight", false, "highlight fenced code")
	fs.StringVar(&f.theme, "theme", "", "highlight theme (chroma style name)")
}

func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also render a PDF with headless Chrome")
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
	fs.StringVar(&f.footerText, "footer-text", "", "custom footer text")
	fs.StringVar(&f.footerPosition, "footer-position", "", "footer position: left, center, right")
	fs.BoolVar(&f.footerPageNumber, "footer-page-number", false, "show page numbers in footer")
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2html", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addStyleFlags(fs, &f.style)
	addCodeFlags(fs, &f.code)
	addPDFFlags(fs, &f.pdf)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
