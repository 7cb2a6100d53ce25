// Package config loads the YAML configuration for go-md2html.
//
// A config is either given as a path or looked up by name in the working
// directory and then in the user config directory (go-md2html/), trying
// .yaml before .yml. Unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// AppDir is the directory under os.UserConfigDir searched for named configs.
const AppDir = "go-md2html"

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxLangLength     = 35 // BCP 47 tags stay well under this
	MaxDateLength     = 30
	MaxNameLength     = 100
	MaxPathLength     = 4096
	MaxTOCTitleLength = 100
	MaxTextLength     = 500
)

// Config holds everything that can be set from a config file.
// Zero values mean "use the built-in default".
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Style    StyleConfig    `yaml:"style"`
	TOC      TOCConfig      `yaml:"toc"`
	Code     CodeConfig     `yaml:"code"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Assets   AssetsConfig   `yaml:"assets"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// DocumentConfig sets the document head.
type DocumentConfig struct {
	Title string `yaml:"title"` // empty: first heading, then the built-in title
	Lang  string `yaml:"lang"`  // html lang attribute
	Date  string `yaml:"date"`  // "auto" = today as YYYY-MM-DD
}

// StyleConfig picks the style sheet.
type StyleConfig struct {
	Name    string `yaml:"name"`    // built-in or asset-path style name
	CSSFile string `yaml:"cssFile"` // extra CSS appended after the style
}

// TOCConfig configures the client-side table of contents.
type TOCConfig struct {
	Title string `yaml:"title"`
}

// CodeConfig configures fenced code rendering.
type CodeConfig struct {
	Highlight bool   `yaml:"highlight"`
	Theme     string `yaml:"theme"` // chroma style name
}

// InputConfig sets the source used when none is given on the command line.
type InputConfig struct {
	Default string `yaml:"default"`
}

// OutputConfig sets where results are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // empty: next to the source
}

// AssetsConfig points at a directory overriding the embedded assets.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"`
}

// PDFConfig configures the optional PDF export.
type PDFConfig struct {
	Enabled bool         `yaml:"enabled"`
	Page    PageConfig   `yaml:"page"`
	Footer  FooterConfig `yaml:"footer"`
}

// PageConfig defines PDF page geometry.
type PageConfig struct {
	Size        string  `yaml:"size"`        // letter, a4, legal
	Orientation string  `yaml:"orientation"` // portrait, landscape
	Margin      float64 `yaml:"margin"`      // inches
}

// FooterConfig defines the PDF page footer.
type FooterConfig struct {
	Enabled    bool   `yaml:"enabled"`
	PageNumber bool   `yaml:"pageNumber"`
	Text       string `yaml:"text"`
	Position   string `yaml:"position"` // left, center, right
}

// DefaultConfig returns a config with every field at its zero value.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks lengths and enumerated values.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"style.name", c.Style.Name, MaxNameLength},
		{"style.cssFile", c.Style.CSSFile, MaxPathLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"code.theme", c.Code.Theme, MaxNameLength},
		{"input.default", c.Input.Default, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"pdf.footer.text", c.PDF.Footer.Text, MaxTextLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := oneOf("pdf.page.size", c.PDF.Page.Size, "letter", "a4", "legal"); err != nil {
		return err
	}
	if err := oneOf("pdf.page.orientation", c.PDF.Page.Orientation, "portrait", "landscape"); err != nil {
		return err
	}
	if err := oneOf("pdf.footer.position", c.PDF.Footer.Position, "left", "center", "right"); err != nil {
		return err
	}
	if m := c.PDF.Page.Margin; m != 0 && (m < 0.25 || m > 3.0) {
		return fmt.Errorf("%w: pdf.page.margin must be between 0.25 and 3.0 inches, got %.2f", ErrInvalidValue, m)
	}
	return nil
}

// ResolveDate expands the document date: "auto" becomes now as YYYY-MM-DD,
// anything else is returned unchanged.
func (c *Config) ResolveDate(now time.Time) string {
	if strings.EqualFold(c.Document.Date, "auto") {
		return now.Format(time.DateOnly)
	}
	return c.Document.Date
}

func validateFieldLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, field, len(value), maxLength)
	}
	return nil
}

// oneOf accepts an empty value or a case-insensitive member of allowed.
func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of %s)", ErrInvalidValue, field, value, strings.Join(allowed, ", "))
}

// LoadConfig loads and validates a config by path or by name.
// A value containing a path separator is read as a path; otherwise it is a
// name searched as described in the package doc. There is no silent fallback
// when nothing is found.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if path, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-selected config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists, in order, the files LoadConfig tries for name.
func SearchPaths(name string) []string {
	exts := []string{".yaml", ".yml"}
	paths := make([]string, 0, 2*len(exts))
	for _, ext := range exts {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range exts {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
