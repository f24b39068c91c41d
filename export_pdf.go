package pignote

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cemayhan20/PigNote/internal/assets"
	"github.com/cemayhan20/PigNote/internal/fileutil"
	"github.com/cemayhan20/PigNote/internal/hints"
	"github.com/cemayhan20/PigNote/internal/pdfbox"
	"github.com/cemayhan20/PigNote/internal/pipeline"
)

// exportPDF prints the page with a headless browser, then crops the footer.
// The temporary HTML file is removed on every path.
func (e *Exporter) exportPDF(ctx context.Context, log *slog.Logger, body, title string, dark bool, outPath string) error {
	browser, err := FindBrowser(e.cfg.browserPath)
	if err != nil {
		return err
	}

	var page strings.Builder
	if err := e.templates.Render(&page, assets.KindPrint, dark, title, body); err != nil {
		return fmt.Errorf("rendering print page: %w", err)
	}

	htmlPath, cleanup, err := fileutil.WriteTempFile(page.String(), "html")
	if err != nil {
		return err
	}
	defer cleanup()

	// A stale file would pass the output check below.
	if err := fileutil.RemoveIfExists(outPath); err != nil {
		return fmt.Errorf("removing previous output: %w", err)
	}

	noSandbox := e.cfg.noSandbox || hints.InCI()
	args := chromeArgs(outPath, pipeline.PathToFileURL(htmlPath), noSandbox)
	log.Debug("starting renderer", "browser", browser, "page", htmlPath)

	p, err := e.session.Start(ctx, browser, args...)
	if err != nil {
		return err
	}
	log.Debug("renderer started", "pid", p.Pid())
	code, err := e.session.Wait(ctx, p)
	if err != nil {
		return err
	}
	if e.session.CancelRequested() {
		return context.Canceled
	}

	if code != 0 {
		return fmt.Errorf("%w: %s exited with code %d%s", ErrExternalProcess, filepath.Base(browser), code, hints.ForBrowserFailed(noSandbox))
	}
	if !fileutil.NonEmptyFile(outPath) {
		return fmt.Errorf("%w: %s produced no PDF%s", ErrExternalProcess, filepath.Base(browser), hints.ForBrowserFailed(noSandbox))
	}

	if e.cfg.footerCrop > 0 {
		if err := pdfbox.CropBottom(outPath, e.cfg.footerCrop); err != nil {
			return err
		}
		log.Debug("footer cropped", "points", e.cfg.footerCrop)
	}
	return nil
}
