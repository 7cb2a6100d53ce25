// Package md2html converts a small Markdown dialect into standalone HTML
// documents with MathJax math and a client-side table of contents.
//
// # Quick Start
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Results\n\nAccuracy is $p = 0.93$.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("results.html", result.HTML, 0o644)
//
// For one-off conversions without options, Body returns only the converted
// fragments and Document returns the full page.
//
// # Supported Markdown
//
// Blocks: fenced code (```lang), display math ($$ on its own line, or
// $$...$$ on one line), ATX headings of any depth, "-" and "*" bullet lists,
// pipe tables, numbered lists with indented continuation lines, blockquotes
// and paragraphs. Inline: **bold**, *italic*, `code`, ![images](url),
// [links](url) and $math$. Nesting is not supported; anything unrecognized
// becomes paragraph text, so conversion never fails on input.
//
// Headings receive ids derived from their text. Identical headings share an
// id.
//
// # Configuration
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithStyle("plain"),
//	    md2html.WithHighlighting("monokai"),
//	    md2html.WithLang("en"),
//	    md2html.WithTOCTitle("Contents"),
//	)
//
// # PDF Export
//
// Setting Input.PDF renders the document in headless Chrome (go-rod) and
// returns the PDF alongside the HTML. The browser starts on first use;
// call Close to shut it down. ROD_BROWSER_BIN selects a local Chrome and
// ROD_NO_SANDBOX=1 disables the sandbox for containers.
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown:  content,
//	    SourceDir: filepath.Dir(path),
//	    PDF: &md2html.PDFOptions{
//	        Page:   &md2html.PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5},
//	        Footer: &md2html.Footer{ShowPageNumber: true},
//	    },
//	})
//
// # Errors
//
// File and browser failures are reported through sentinel errors such as
// ErrSourceNotFound, ErrDestinationUnwritable and ErrBrowserConnect; test
// for them with errors.Is.
package md2html
