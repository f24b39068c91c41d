package pignote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/cemayhan20/PigNote/internal/assets"
	"github.com/cemayhan20/PigNote/internal/fileutil"
	"github.com/cemayhan20/PigNote/internal/pipeline"
)

// Exporter turns note sources into PDF, HTML and DOCX files.
// Create with NewExporter. An Exporter runs one export at a time per Session;
// concurrent calls preempt each other's renderer.
type Exporter struct {
	cfg       exporterConfig
	session   *Session
	logger    *slog.Logger
	converter pipeline.HTMLConverter
	templates *assets.TemplateSet
	now       func() time.Time
}

// NewExporter creates an Exporter. Returns an error if the engine is unknown
// or the layouts cannot be loaded.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		cfg: exporterConfig{
			footerCrop: DefaultFooterCrop,
			engine:     pipeline.EngineBuiltin,
		},
		session: NewSession(),
		logger:  discardLogger(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	converter, err := pipeline.NewHTMLConverter(e.cfg.engine)
	if err != nil {
		return nil, err
	}
	e.converter = converter

	resolver, err := assets.NewAssetResolver(e.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	e.templates, err = assets.LoadTemplateSet(resolver)
	if err != nil {
		return nil, fmt.Errorf("loading layouts: %w", err)
	}
	e.logger.Debug("layouts loaded", "engine", e.cfg.engine, "custom_assets", resolver.HasCustomLoader())

	return e, nil
}

// Session returns the session used to track and cancel exports.
func (e *Exporter) Session() *Session {
	return e.session
}

// Cancel stops the running export, or the next one if none is running.
func (e *Exporter) Cancel() {
	e.session.Cancel()
}

// Export converts req.Content and writes <output dir>/<filename>.<format>.
//
// On cancellation it returns ErrCanceled and removes any partial output.
// When the PDF footer crop fails it returns both the Result and an error
// wrapping ErrPDFStructure; the uncropped PDF is kept.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, end := e.session.Begin(ctx)
	defer end()

	jobID := uuid.NewString()
	outPath, err := e.outputPath(req)
	if err != nil {
		return nil, err
	}
	log := e.logger.With("job", jobID, "format", string(req.Format), "path", outPath)
	log.Debug("export started", "dark", req.DarkMode, "engine", e.cfg.engine)

	result := &Result{Path: outPath, Format: req.Format, JobID: jobID}
	err = e.export(ctx, log, req, outPath)

	switch {
	case err == nil:
		log.Info("export finished")
		return result, nil
	case e.canceled(err):
		_ = fileutil.RemoveIfExists(outPath)
		e.session.consumeCancel()
		log.Info("export canceled")
		return nil, ErrCanceled
	case errors.Is(err, ErrPDFStructure):
		log.Warn("footer crop failed, keeping uncropped PDF", "error", err)
		return result, err
	default:
		_ = fileutil.RemoveIfExists(outPath)
		log.Error("export failed", "error", err)
		return nil, err
	}
}

func (e *Exporter) export(ctx context.Context, log *slog.Logger, req Request, outPath string) error {
	body, err := e.prepareBody(ctx, req)
	if err != nil {
		return err
	}
	log.Debug("body prepared", "bytes", len(body))

	title := strings.TrimSpace(req.Filename)
	switch req.Format {
	case FormatHTML:
		return e.exportHTML(ctx, body, title, req.DarkMode, outPath)
	case FormatDOCX:
		return e.exportDOCX(ctx, body, title, req.DarkMode, outPath)
	default:
		return e.exportPDF(ctx, log, body, title, req.DarkMode, outPath)
	}
}

// prepareBody turns the source into an HTML body with images resolved.
func (e *Exporter) prepareBody(ctx context.Context, req Request) (string, error) {
	var body string
	if pipeline.IsHTML(req.Content) {
		extracted, err := pipeline.ExtractBody(req.Content)
		if err != nil {
			return "", err
		}
		body = extracted
	} else {
		converted, err := e.converter.ToHTML(ctx, req.Content)
		if err != nil {
			return "", err
		}
		body = converted
	}

	return pipeline.ResolveImages(ctx, body, req.BaseDir)
}

// canceled reports whether err comes from a cancellation rather than a failure.
func (e *Exporter) canceled(err error) bool {
	return errors.Is(err, context.Canceled) || e.session.CancelRequested()
}

// outputPath returns the absolute artifact path for req.
func (e *Exporter) outputPath(req Request) (string, error) {
	dir := e.cfg.outputDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(filepath.Join(dir, sanitizeFilename(req.Filename)+"."+string(req.Format)))
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}
	return abs, nil
}

// reservedFilenameChars cannot appear in file names on Windows; '/' and '\'
// are path separators everywhere.
const reservedFilenameChars = `<>:"/\|?*`

// sanitizeFilename NFC-normalises name and drops control and reserved
// characters. An empty result becomes "document".
func sanitizeFilename(name string) string {
	name = norm.NFC.String(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(reservedFilenameChars, r) {
			return -1
		}
		return r
	}, name)

	// Trailing dots and spaces are dropped by Windows.
	name = strings.Trim(name, " .")
	if name == "" {
		return "document"
	}
	return name
}

// writeFile writes data to path, removing a partial file on failure.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- exported documents are meant to be shared
		_ = os.Remove(path)
		return err
	}
	return nil
}
