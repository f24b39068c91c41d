package pignote

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/cemayhan20/PigNote/internal/hints"
)

// rodBrowserEnv is honoured for compatibility with go-rod based tooling.
const rodBrowserEnv = "ROD_BROWSER_BIN"

// lookPath finds an installed Chrome, Chromium or Edge. Replaced in tests.
var lookPath = launcher.LookPath

// FindBrowser returns the renderer executable. Candidates are tried in order:
// explicit, $PIGNOTE_BROWSER_BIN, $ROD_BROWSER_BIN, then the well-known
// install locations of Chromium-family browsers. The first non-empty
// candidate must resolve; it is not skipped when it does not.
func FindBrowser(explicit string) (string, error) {
	for _, candidate := range []string{explicit, os.Getenv(hints.BrowserEnv), os.Getenv(rodBrowserEnv)} {
		if candidate == "" {
			continue
		}
		path, err := exec.LookPath(candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v%s", ErrRenderingEngineNotFound, candidate, err, hints.ForBrowserNotFound())
		}
		return path, nil
	}

	if path, ok := lookPath(); ok {
		return path, nil
	}
	return "", fmt.Errorf("%w: no Chromium-family browser installed%s", ErrRenderingEngineNotFound, hints.ForBrowserNotFound())
}

// chromeArgs builds the headless print command line for pageURL.
func chromeArgs(outPath, pageURL string, noSandbox bool) []string {
	args := []string{
		"--headless",
		"--disable-gpu",
		"--disable-features=PrintingPDFHeaderFooter",
		"--no-pdf-header-footer",
		"--print-to-pdf-no-header",
	}
	if noSandbox {
		args = append(args, "--no-sandbox")
	}
	return append(args, "--print-to-pdf="+outPath, pageURL)
}
