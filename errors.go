package md2html

import "errors"

// Sentinel errors for library operations.
var (
	// File errors, terminal for one conversion.
	ErrSourceNotFound        = errors.New("source file not found")
	ErrSourceUnreadable      = errors.New("source file unreadable")
	ErrDestinationUnwritable = errors.New("destination not writable")

	// Browser errors during PDF export.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Page settings validation errors.
	ErrInvalidPageSize       = errors.New("invalid page size")
	ErrInvalidOrientation    = errors.New("invalid orientation")
	ErrInvalidMargin         = errors.New("invalid margin")
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Asset and rendering setup errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidTheme     = errors.New("invalid highlight theme")
	ErrDocumentRender   = errors.New("document rendering failed")
)
