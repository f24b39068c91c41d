package pignote

import (
	"fmt"
	"strings"
)

// Format identifies an export artifact type.
type Format string

// Supported export formats.
const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatDOCX Format = "docx"
)

// Formats lists every supported format.
var Formats = []Format{FormatPDF, FormatHTML, FormatDOCX}

// ParseFormat converts a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Validate reports ErrUnsupportedFormat for unknown formats.
func (f Format) Validate() error {
	switch f {
	case FormatPDF, FormatHTML, FormatDOCX:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be pdf, html or docx)", ErrUnsupportedFormat, string(f))
	}
}

// Request describes one export.
type Request struct {
	// Content is the note source. It is treated as HTML when its first
	// non-whitespace character is '<', as Markdown otherwise.
	Content string
	// Filename is the output base name without extension.
	Filename string
	Format   Format
	DarkMode bool
	// BaseDir resolves relative image references. Empty leaves them as is.
	BaseDir string
}

// Validate checks the request before any work is done.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Filename) == "" {
		return ErrEmptyFilename
	}
	return r.Format.Validate()
}

// Result describes a written artifact.
type Result struct {
	Path   string
	Format Format
	// JobID identifies the export in log records.
	JobID string
}
