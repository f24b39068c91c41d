// Package hints builds the follow-up advice appended to error messages.
// Every hint renders as "\n  hint: <text>" so the CLI can print the error
// and its advice as one block.
package hints

import (
	"os"
	"strings"

	"github.com/cemayhan20/PigNote/internal/fileutil"
)

// BrowserEnv names the environment variable that overrides renderer discovery.
const BrowserEnv = "PIGNOTE_BROWSER_BIN"

const prefix = "\n  hint: "

// ciVariables are set by the CI systems we recognise.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// IsInContainer reports whether /.dockerenv exists. Replaceable in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether any recognised CI variable is set.
func InCI() bool {
	for _, name := range ciVariables {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// join renders the non-empty parts as one hint, or "" when there are none.
func join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}

// unlessBrowserEnv returns s when BrowserEnv is unset.
func unlessBrowserEnv(s string) string {
	if os.Getenv(BrowserEnv) != "" {
		return ""
	}
	return s
}

// ForBrowserNotFound advises on a missing Chromium-family renderer.
func ForBrowserNotFound() string {
	return join(
		"install Chrome, Chromium or Edge",
		unlessBrowserEnv("set "+BrowserEnv+" to the browser executable"),
	)
}

// ForBrowserFailed advises on a renderer that exited with an error.
// noSandbox reports whether --no-sandbox was already passed.
func ForBrowserFailed(noSandbox bool) string {
	var sandbox string
	if !noSandbox && (InCI() || IsInContainer()) {
		sandbox = "use --no-sandbox (pdf.noSandbox: true) for Docker/CI"
	}
	return join(sandbox, unlessBrowserEnv("set "+BrowserEnv+" to use another browser"))
}

func ForTimeout() string {
	return join("for large notes, use --timeout flag")
}

// ForConfigNotFound suggests --config, and creating the per-user file when
// it was among the searched paths.
func ForConfigNotFound(searched []string) string {
	advice := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), ".config/pignote") {
			advice += " or create " + p
			break
		}
	}
	return join(advice)
}

func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// ForUnknownEngine lists the Markdown engines that can be selected.
func ForUnknownEngine(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

// ForPDFStructure is shown when the footer crop could not parse the PDF.
func ForPDFStructure() string {
	return join("the unedited PDF was kept; use --footer-crop 0 to skip cropping")
}
