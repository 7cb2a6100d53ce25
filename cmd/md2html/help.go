package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html [flags] [source]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown file to a standalone HTML document with MathJax")
	fmt.Fprintln(w, "and a table of contents, optionally also to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintf(w, "  source    Markdown file; .md is appended when missing (default %s)\n", defaultSource)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = first heading)")
	fmt.Fprintln(w, "      --lang <s>            html lang attribute (default zh-CN)")
	fmt.Fprintln(w, "      --date <s>            Date meta tag: \"auto\" or literal")
	fmt.Fprintln(w, "      --toc-title <s>       Table of contents heading")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file path, or CSS text")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding styles/ and templates/")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code")
	fmt.Fprintln(w, "      --theme <s>           Highlight theme (chroma style name)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also render a PDF (requires Chrome)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "      --footer-text <s>     Custom footer text")
	fmt.Fprintln(w, "      --footer-position <s> Position: left, center, right")
	fmt.Fprintln(w, "      --footer-page-number  Show page numbers")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2HTML_CONFIG, MD2HTML_STYLE, MD2HTML_TIMEOUT, MD2HTML_LANG,")
	fmt.Fprintln(w, "  MD2HTML_INPUT, MD2HTML_OUTPUT_DIR, MD2HTML_PAGE_SIZE")
}

// printGuide explains how to print the HTML to PDF from a browser.
func printGuide(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "To save as PDF:")
	fmt.Fprintln(w, "  1. Open the generated HTML file in a browser")
	fmt.Fprintln(w, "  2. Press Ctrl+P (Cmd+P on macOS)")
	fmt.Fprintln(w, "  3. Choose \"Save as PDF\"")
	fmt.Fprintln(w, "  4. Use A4 paper and enable background graphics")
	fmt.Fprintln(w, "  5. Save the file")
	fmt.Fprintln(w, "Or rerun with --pdf to render it directly.")
}

// printBanner prints the header shown before a conversion.
func printBanner(w io.Writer, source string) {
	fmt.Fprintln(w, "Markdown to HTML converter")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Input: %s\n", source)
}
