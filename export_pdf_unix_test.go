//go:build !windows

package pignote

// Notes:
// - The renderer is a shell script standing in for Chromium. It records its
//   arguments, copies the page it was asked to print and then runs a
//   per-test body that decides what "printing" does.
// - The page is copied because the exporter deletes its temporary HTML
//   before Export returns.

import (
	"bufio"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/cemayhan20/PigNote/internal/pdfbox"
	"github.com/cemayhan20/PigNote/internal/pdfbox/pdftest"
)

// fakeBrowser is a scripted renderer living in its own directory.
type fakeBrowser struct {
	path     string
	argsFile string
	pageCopy string
	marker   string
	fixture  string
}

// newFakeBrowser writes a renderer script whose tail is body. Within body,
// $out is the --print-to-pdf target and $FIXTURE a valid one-page A4 PDF.
func newFakeBrowser(t *testing.T, body string) *fakeBrowser {
	t.Helper()
	requireShell(t)

	dir := t.TempDir()
	fb := &fakeBrowser{
		path:     filepath.Join(dir, "chromium"),
		argsFile: filepath.Join(dir, "args.txt"),
		pageCopy: filepath.Join(dir, "page.html"),
		marker:   filepath.Join(dir, "started"),
		fixture:  filepath.Join(dir, "fixture.pdf"),
	}
	pdftest.Write(t, fb.fixture, pdftest.Doc{Pages: []pdftest.Page{{MediaBox: pdftest.A4}}})

	script := `#!/bin/sh
out=""
page=""
for a in "$@"; do
  printf '%s\n' "$a" >> '` + fb.argsFile + `'
  case "$a" in
    --print-to-pdf=*) out="${a#--print-to-pdf=}" ;;
    file://*) page="${a#file://}" ;;
  esac
done
cp "$page" '` + fb.pageCopy + `'
FIXTURE='` + fb.fixture + `'
echo started > '` + fb.marker + `'
` + body + "\n"

	if err := os.WriteFile(fb.path, []byte(script), 0o700); err != nil { // #nosec G306 -- test renderer must be executable
		t.Fatalf("writing fake browser: %v", err)
	}
	return fb
}

func (fb *fakeBrowser) args(t *testing.T) []string {
	t.Helper()
	f, err := os.Open(fb.argsFile)
	if err != nil {
		t.Fatalf("renderer was not run: %v", err)
	}
	defer f.Close()

	var args []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		args = append(args, sc.Text())
	}
	return args
}

// pagePath returns the temporary HTML path the renderer was given.
func (fb *fakeBrowser) pagePath(t *testing.T) string {
	t.Helper()
	args := fb.args(t)
	u, err := url.Parse(args[len(args)-1])
	if err != nil {
		t.Fatalf("parsing page URL: %v", err)
	}
	return u.Path
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for {
		if _, err := os.Stat(path); err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("%s never appeared", path)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// ---------------------------------------------------------------------------
// TestExport_PDF - Renderer Orchestration
// ---------------------------------------------------------------------------

func TestExport_PDF(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser(t, `cp "$FIXTURE" "$out"`)
	exp, dir := newTestExporter(t, WithBrowserPath(fb.path), WithNoSandbox(true))

	res, err := exp.Export(context.Background(), Request{
		Content:  "# Report\n\nBody",
		Filename: "report",
		Format:   FormatPDF,
		DarkMode: true,
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.Path != filepath.Join(dir, "report.pdf") || res.Format != FormatPDF {
		t.Errorf("Result = %+v", res)
	}

	args := fb.args(t)
	for _, want := range []string{"--headless", "--disable-gpu", "--no-pdf-header-footer", "--no-sandbox", "--print-to-pdf=" + res.Path} {
		if !slices.Contains(args, want) {
			t.Errorf("renderer args %q missing %q", args, want)
		}
	}
	if last := args[len(args)-1]; !strings.HasPrefix(last, "file:///") || !strings.HasSuffix(last, ".html") {
		t.Errorf("page URL = %q", last)
	}

	page := readOutput(t, fb.pageCopy)
	for _, want := range []string{"<h1>Report</h1>", `class="watermark"`, "print-mask-bottom", "#0f172a"} {
		if !strings.Contains(page, want) {
			t.Errorf("print page missing %q", want)
		}
	}

	if _, err := os.Stat(fb.pagePath(t)); !os.IsNotExist(err) {
		t.Error("temporary HTML not removed")
	}

	boxes, err := pdfbox.ReadBoxes(res.Path)
	if err != nil {
		t.Fatalf("ReadBoxes() error = %v", err)
	}
	want := pdfbox.Rect{LLX: 0, LLY: DefaultFooterCrop, URX: 595, URY: 842}
	for _, name := range pdfbox.BoxNames {
		if got := boxes[0].Boxes[name]; got != want {
			t.Errorf("%s = %+v, want %+v", name, got, want)
		}
	}
}

func TestExport_PDF_NoCrop(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser(t, `cp "$FIXTURE" "$out"`)
	exp, _ := newTestExporter(t, WithBrowserPath(fb.path), WithFooterCrop(0))

	res, err := exp.Export(context.Background(), Request{Content: "x", Filename: "n", Format: FormatPDF})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	boxes, err := pdfbox.ReadBoxes(res.Path)
	if err != nil {
		t.Fatalf("ReadBoxes() error = %v", err)
	}
	if _, ok := boxes[0].Boxes["CropBox"]; ok {
		t.Error("CropBox set although cropping was disabled")
	}
}

func TestExport_PDF_RendererFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantErr     error
		wantMessage string
		wantResult  bool
		wantOutput  bool
	}{
		{
			name:        "non-zero exit",
			body:        "exit 3",
			wantErr:     ErrExternalProcess,
			wantMessage: "exited with code 3",
		},
		{
			name:        "no output",
			body:        "exit 0",
			wantErr:     ErrExternalProcess,
			wantMessage: "produced no PDF",
		},
		{
			name:        "empty output",
			body:        `: > "$out"`,
			wantErr:     ErrExternalProcess,
			wantMessage: "produced no PDF",
		},
		{
			name:       "unparseable output keeps file",
			body:       `echo "not a pdf" > "$out"`,
			wantErr:    ErrPDFStructure,
			wantResult: true,
			wantOutput: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fb := newFakeBrowser(t, tt.body)
			exp, dir := newTestExporter(t, WithBrowserPath(fb.path))

			res, err := exp.Export(context.Background(), Request{Content: "x", Filename: "fail", Format: FormatPDF})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Export() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMessage != "" && !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("error %q does not mention %q", err, tt.wantMessage)
			}
			if (res != nil) != tt.wantResult {
				t.Errorf("Result = %+v, want present = %v", res, tt.wantResult)
			}

			_, statErr := os.Stat(filepath.Join(dir, "fail.pdf"))
			if gotOutput := statErr == nil; gotOutput != tt.wantOutput {
				t.Errorf("output present = %v, want %v", gotOutput, tt.wantOutput)
			}
			if _, err := os.Stat(fb.pagePath(t)); !os.IsNotExist(err) {
				t.Error("temporary HTML not removed")
			}
		})
	}
}

func TestExport_PDF_StaleOutputRemoved(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser(t, "exit 0")
	exp, dir := newTestExporter(t, WithBrowserPath(fb.path))

	stale := filepath.Join(dir, "old.pdf")
	pdftest.Write(t, stale, pdftest.Doc{Pages: []pdftest.Page{{MediaBox: pdftest.A4}}})

	_, err := exp.Export(context.Background(), Request{Content: "x", Filename: "old", Format: FormatPDF})
	if !errors.Is(err, ErrExternalProcess) {
		t.Fatalf("Export() error = %v, want ErrExternalProcess", err)
	}
}

func TestExport_PDF_BrowserNotFound(t *testing.T) {
	t.Parallel()

	exp, _ := newTestExporter(t, WithBrowserPath(filepath.Join(t.TempDir(), "missing")))
	_, err := exp.Export(context.Background(), Request{Content: "x", Filename: "n", Format: FormatPDF})
	if !errors.Is(err, ErrRenderingEngineNotFound) {
		t.Errorf("Export() error = %v, want ErrRenderingEngineNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestExport_PDF_Cancel - Cancellation While Rendering
// ---------------------------------------------------------------------------

func TestExport_PDF_Cancel(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser(t, `cp "$FIXTURE" "$out"
exec sleep 30`)
	exp, dir := newTestExporter(t, WithBrowserPath(fb.path))

	errc := make(chan error, 1)
	go func() {
		_, err := exp.Export(context.Background(), Request{Content: "# x", Filename: "slow", Format: FormatPDF})
		errc <- err
	}()

	waitForFile(t, fb.marker)
	exp.Cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, ErrCanceled) {
			t.Fatalf("Export() error = %v, want ErrCanceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Export() did not return after Cancel")
	}

	if _, err := os.Stat(filepath.Join(dir, "slow.pdf")); !os.IsNotExist(err) {
		t.Error("partial PDF not removed")
	}
	if _, err := os.Stat(fb.pagePath(t)); !os.IsNotExist(err) {
		t.Error("temporary HTML not removed")
	}
	if exp.Session().CancelRequested() {
		t.Error("cancellation flag not reset after reporting it")
	}
	if exp.Session().Active() {
		t.Error("renderer still held after cancellation")
	}
}

func TestExport_PDF_ContextCancel(t *testing.T) {
	t.Parallel()

	fb := newFakeBrowser(t, "exec sleep 30")
	exp, _ := newTestExporter(t, WithBrowserPath(fb.path))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := exp.Export(ctx, Request{Content: "x", Filename: "ctx", Format: FormatPDF})
		errc <- err
	}()

	waitForFile(t, fb.marker)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, ErrCanceled) {
			t.Errorf("Export() error = %v, want ErrCanceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Export() did not return after context cancel")
	}
}
