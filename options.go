package md2html

import "time"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds settings collected from options.
type converterConfig struct {
	timeout   time.Duration
	style     string // name, path, or CSS text
	assetPath string
	highlight bool
	theme     string
	lang      string
	tocTitle  string
}

// defaultTimeout bounds one PDF rendering when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, like time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the style sheet. The value is read as a file path when
// it contains a path separator, as CSS text when it contains "{", and as a
// style name otherwise.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.style = style
	}
}

// WithAssetPath adds a directory whose styles/ and templates/ override the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithHighlighting enables chroma highlighting of fenced code with the named
// style. An empty theme uses the default.
func WithHighlighting(theme string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.theme = theme
	}
}

// WithLang sets the html lang attribute.
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}

// WithTOCTitle sets the heading of the generated table of contents.
func WithTOCTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.tocTitle = title
	}
}
