package pignote

import (
	"errors"

	"github.com/cemayhan20/PigNote/internal/pdfbox"
)

// Sentinel errors for library operations.
var (
	// ErrCanceled is returned when Cancel stopped the export. Partial output
	// has been removed.
	ErrCanceled = errors.New("export canceled")

	ErrRenderingEngineNotFound = errors.New("rendering engine not found")
	ErrExternalProcess         = errors.New("external process failed")
	ErrEmptyFilename           = errors.New("filename cannot be empty")
	ErrUnsupportedFormat       = errors.New("unsupported export format")
	ErrInvalidAssetPath        = errors.New("invalid asset path")

	// ErrPDFStructure is returned when the rendered PDF could not be cropped.
	// The Result is still returned and the uncropped PDF is kept.
	ErrPDFStructure = pdfbox.ErrPDFStructure
)
