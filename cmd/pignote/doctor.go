package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	pignote "github.com/cemayhan20/PigNote"
	"github.com/cemayhan20/PigNote/internal/hints"
)

// Overall doctor verdicts.
const (
	verdictReady    = "ready"
	verdictWarnings = "warnings"
	verdictErrors   = "errors"
)

const versionProbeTimeout = 5 * time.Second

// diagnosis is what doctor found. Its JSON form is the --json output.
type diagnosis struct {
	Verdict  string       `json:"status"`
	Renderer rendererInfo `json:"renderer"`
	Host     hostInfo     `json:"host"`
	TempDir  tempDirInfo  `json:"temp_dir"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

type rendererInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	EnvPath string `json:"env_path,omitempty"`
}

type hostInfo struct {
	Platform  string `json:"platform"`
	Container string `json:"container,omitempty"` // detection signal, empty outside containers
	CI        bool   `json:"ci"`
}

type tempDirInfo struct {
	Path     string `json:"path"`
	Writable bool   `json:"writable"`
}

func (d *diagnosis) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

func (d *diagnosis) failf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd reports whether PDF export can work on this machine. It
// returns ExitGeneral when any check failed; warnings alone still pass.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print JSON")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "pignote: %v\n", err)
		return ExitUsage
	}

	d := diagnose()
	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(d)
	} else {
		d.writeText(env.Stdout)
	}

	if d.Verdict == verdictErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func diagnose() *diagnosis {
	d := &diagnosis{}
	for _, check := range []func(*diagnosis){checkRenderer, checkHost, checkTempDir} {
		check(d)
	}

	switch {
	case len(d.Errors) > 0:
		d.Verdict = verdictErrors
	case len(d.Warnings) > 0:
		d.Verdict = verdictWarnings
	default:
		d.Verdict = verdictReady
	}
	return d
}

// checkRenderer runs the same browser lookup as export and asks the
// binary for its version.
func checkRenderer(d *diagnosis) {
	d.Renderer.EnvPath = os.Getenv(hints.BrowserEnv)

	path, err := pignote.FindBrowser("")
	if err != nil {
		d.failf("%s", firstLine(err.Error()))
		return
	}
	d.Renderer.Found = true
	d.Renderer.Path = path

	ctx, cancel := context.WithTimeout(context.Background(), versionProbeTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- path from FindBrowser
	if err != nil {
		d.warnf("browser at %s did not report a version: %v", path, err)
		return
	}
	d.Renderer.Version = strings.TrimSpace(string(out))
}

func checkHost(d *diagnosis) {
	d.Host.Platform = runtime.GOOS + "/" + runtime.GOARCH
	d.Host.Container = containerSignal()
	d.Host.CI = hints.InCI()

	if d.Host.Container != "" || d.Host.CI {
		d.warnf("container or CI detected: pass --no-sandbox to export PDF")
	}
}

// containerSignal names the first container indicator found, or "".
func containerSignal() string {
	if os.Getenv("PIGNOTE_CONTAINER") == "1" {
		return "PIGNOTE_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return "KUBERNETES_SERVICE_HOST"
	}
	return ""
}

// checkTempDir verifies print pages can be staged.
func checkTempDir(d *diagnosis) {
	d.TempDir.Path = os.TempDir()

	f, err := os.CreateTemp(d.TempDir.Path, "pignote-doctor-*")
	if err != nil {
		d.failf("temp directory %s is not writable: %v", d.TempDir.Path, err)
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	d.TempDir.Writable = true
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func (d *diagnosis) writeText(w io.Writer) {
	mark := func(ok bool) string {
		if ok {
			return "ok  "
		}
		return "FAIL"
	}

	fmt.Fprintln(w, "pignote doctor")
	fmt.Fprintln(w)

	if d.Renderer.Found {
		fmt.Fprintf(w, "[%s] renderer   %s\n", mark(true), d.Renderer.Path)
		if d.Renderer.Version != "" {
			fmt.Fprintf(w, "            version    %s\n", d.Renderer.Version)
		}
	} else {
		fmt.Fprintf(w, "[%s] renderer   not found\n", mark(false))
	}
	if d.Renderer.EnvPath != "" {
		fmt.Fprintf(w, "            %s=%s\n", hints.BrowserEnv, d.Renderer.EnvPath)
	}

	fmt.Fprintf(w, "[%s] platform   %s\n", mark(true), d.Host.Platform)
	if d.Host.Container != "" {
		fmt.Fprintf(w, "            container  %s\n", d.Host.Container)
	}
	if d.Host.CI {
		fmt.Fprintln(w, "            ci         yes")
	}

	fmt.Fprintf(w, "[%s] temp dir   %s\n", mark(d.TempDir.Writable), d.TempDir.Path)
	fmt.Fprintln(w)

	for _, msg := range d.Warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	for _, msg := range d.Errors {
		fmt.Fprintf(w, "error: %s\n", msg)
	}

	switch d.Verdict {
	case verdictReady:
		fmt.Fprintln(w, "Ready to export.")
	case verdictWarnings:
		fmt.Fprintln(w, "Ready to export, with warnings.")
	default:
		fmt.Fprintln(w, "Not ready to export PDF.")
	}
}
