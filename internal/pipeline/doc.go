// Package pipeline turns a Markdown subset into HTML.
//
// Conversion is line oriented. Parse walks the input once and hands each
// position to the block rules in a fixed priority order: code fence, math
// block, heading, bullet list, table, ordered list, blockquote, blank line,
// and finally paragraph. Every rule returns one Fragment plus the index of
// the next unconsumed line, so the fragments come out in source order and
// every line is consumed exactly once.
//
// Text-bearing blocks go through FormatInline, which protects inline math
// before applying the emphasis, code, image and link patterns. Code block
// contents are escaped with EscapeHTML or, when a ChromaCode renderer is
// configured, highlighted with chroma.
//
// Shell wraps a body in the standalone document template (MathJax loader,
// style sheet, client-side table of contents). RebaseLinks prepares that
// document for loading from a temporary file during PDF export.
package pipeline
