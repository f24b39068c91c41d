package pignote

import (
	"io"
	"log/slog"
	"time"
)

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	outputDir   string
	browserPath string
	noSandbox   bool
	footerCrop  float64
	engine      string
	assetPath   string
}

// DefaultFooterCrop is the height in points removed from the bottom of every
// PDF page, enough to hide the renderer's footer line.
const DefaultFooterCrop = 140

// WithOutputDir sets the directory artifacts are written to.
// Empty means the current directory.
func WithOutputDir(dir string) Option {
	return func(e *Exporter) {
		e.cfg.outputDir = dir
	}
}

// WithBrowserPath sets the Chromium-family executable used for PDF export.
// Empty means discovery (see FindBrowser).
func WithBrowserPath(path string) Option {
	return func(e *Exporter) {
		e.cfg.browserPath = path
	}
}

// WithNoSandbox passes --no-sandbox to the renderer.
func WithNoSandbox(noSandbox bool) Option {
	return func(e *Exporter) {
		e.cfg.noSandbox = noSandbox
	}
}

// WithFooterCrop sets the height in points cropped from each PDF page.
// Zero disables cropping.
// Panics if points < 0 (programmer error, similar to time.NewTicker).
func WithFooterCrop(points float64) Option {
	if points < 0 {
		panic("pignote: WithFooterCrop points must not be negative")
	}
	return func(e *Exporter) {
		e.cfg.footerCrop = points
	}
}

// WithEngine selects the Markdown engine ("builtin" or "goldmark").
func WithEngine(name string) Option {
	return func(e *Exporter) {
		e.cfg.engine = name
	}
}

// WithSession shares a Session between exporters so one Cancel call reaches
// whichever of them is running.
func WithSession(s *Session) Option {
	return func(e *Exporter) {
		if s != nil {
			e.session = s
		}
	}
}

// WithLogger sets the logger. The default discards every record.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithAssetPath loads layouts and icons from dir, falling back to the
// embedded ones for anything missing.
func WithAssetPath(dir string) Option {
	return func(e *Exporter) {
		e.cfg.assetPath = dir
	}
}

// withClock overrides the time source used for DOCX metadata.
func withClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
