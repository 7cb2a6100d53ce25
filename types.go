package md2html

import (
	"fmt"
	"strings"
	"time"
)

// Input is one document to convert.
type Input struct {
	Markdown  string      // source text; any text is accepted
	Title     string      // <title>; empty = first heading, then the built-in title
	Date      string      // optional <meta name="date">
	CSS       string      // extra CSS appended after the converter style
	SourceDir string      // base for relative links when rendering a PDF
	PDF       *PDFOptions // nil = HTML only
}

// ConvertResult holds the generated document.
type ConvertResult struct {
	HTML []byte
	PDF  []byte // nil unless Input.PDF was set
}

// FileResult reports what ConvertFile wrote.
type FileResult struct {
	HTMLPath string
	PDFPath  string // empty when no PDF was requested
	Duration time.Duration
}

// PDFOptions requests a PDF rendering of the document.
type PDFOptions struct {
	Page   *PageSettings // nil = DefaultPageSettings
	Footer *Footer       // nil = no footer
}

// Validate checks page and footer settings. A nil receiver is valid.
func (o *PDFOptions) Validate() error {
	if o == nil {
		return nil
	}
	if err := o.Page.Validate(); err != nil {
		return err
	}
	return o.Footer.Validate()
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paperSizes maps page sizes to portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings defines PDF page geometry.
type PageSettings struct {
	Size        string  // letter, a4, legal
	Orientation string  // portrait, landscape
	Margin      float64 // inches, all sides
}

// DefaultPageSettings returns US Letter, portrait, half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are usable. A nil receiver is valid.
// Values compare case-insensitively and are not modified.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns paper width and height in inches for a validated p.
func (p *PageSettings) dimensions() (width, height float64) {
	size := paperSizes[strings.ToLower(p.Size)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return size[1], size[0]
	}
	return size[0], size[1]
}

// Footer configures the PDF page footer.
type Footer struct {
	Position       string // left, center, right (default)
	ShowPageNumber bool
	Text           string
}

// Validate checks the footer position. A nil receiver is valid.
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}
