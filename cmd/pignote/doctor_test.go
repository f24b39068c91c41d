package main

// Notes:
// - Renderer detection depends on the machine running the tests, so the
//   end-to-end checks only assert the output shape and that the exit code
//   agrees with the verdict.
// - Container and CI detection read environment variables and cannot run
//   in parallel.

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/cemayhan20/PigNote/internal/hints"
)

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output Modes and Exit Codes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	code := runDoctorCmd([]string{"--json"}, env)

	var d diagnosis
	if err := json.Unmarshal(stdout.Bytes(), &d); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}

	if want := runtime.GOOS + "/" + runtime.GOARCH; d.Host.Platform != want {
		t.Errorf("platform = %q, want %q", d.Host.Platform, want)
	}
	if d.Renderer.Found != (d.Renderer.Path != "") {
		t.Errorf("renderer found = %v with path %q", d.Renderer.Found, d.Renderer.Path)
	}

	wantCode := ExitSuccess
	if d.Verdict == verdictErrors {
		wantCode = ExitGeneral
		if len(d.Errors) == 0 {
			t.Error("errors verdict without messages")
		}
	}
	if code != wantCode {
		t.Errorf("exit code = %d for verdict %q, want %d", code, d.Verdict, wantCode)
	}
}

func TestRunDoctorCmd_Text(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	_ = runDoctorCmd(nil, env)

	for _, want := range []string{"pignote doctor", "renderer", "platform", "temp dir", "export"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv()
	if code := runDoctorCmd([]string{"--yaml"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr.String(), "yaml") {
		t.Errorf("stderr = %q, want the bad flag named", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestContainerSignal - Detection Order
// ---------------------------------------------------------------------------

func TestContainerSignal(t *testing.T) {
	t.Run("explicit override", func(t *testing.T) {
		t.Setenv("PIGNOTE_CONTAINER", "1")
		if got := containerSignal(); got != "PIGNOTE_CONTAINER=1" {
			t.Errorf("containerSignal() = %q", got)
		}
	})

	t.Run("container variable", func(t *testing.T) {
		if hints.IsInContainer() {
			t.Skip("running under Docker")
		}
		t.Setenv("PIGNOTE_CONTAINER", "")
		t.Setenv("container", "podman")
		if got := containerSignal(); got != "container=podman" {
			t.Errorf("containerSignal() = %q", got)
		}
	})
}

func TestCheckHost_WarnsInCI(t *testing.T) {
	t.Setenv("CI", "true")

	d := &diagnosis{}
	checkHost(d)

	if !d.Host.CI {
		t.Error("CI not detected")
	}
	if len(d.Warnings) != 1 || !strings.Contains(d.Warnings[0], "--no-sandbox") {
		t.Errorf("warnings = %q, want a sandbox note", d.Warnings)
	}
}

func TestCheckTempDir(t *testing.T) {
	t.Run("writable", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("TMPDIR", dir)

		d := &diagnosis{}
		checkTempDir(d)
		if !d.TempDir.Writable || d.TempDir.Path != dir || len(d.Errors) != 0 {
			t.Errorf("temp dir = %+v, errors = %q", d.TempDir, d.Errors)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("TMPDIR is not consulted on Windows")
		}
		t.Setenv("TMPDIR", t.TempDir()+"/gone")

		d := &diagnosis{}
		checkTempDir(d)
		if d.TempDir.Writable || len(d.Errors) != 1 {
			t.Errorf("temp dir = %+v, errors = %q", d.TempDir, d.Errors)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDiagnosis_WriteText - Human Output
// ---------------------------------------------------------------------------

func TestDiagnosis_WriteText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    diagnosis
		want []string
	}{
		{
			name: "ready",
			d: diagnosis{
				Verdict:  verdictReady,
				Renderer: rendererInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120"},
				Host:     hostInfo{Platform: "linux/amd64"},
				TempDir:  tempDirInfo{Path: "/tmp", Writable: true},
			},
			want: []string{"[ok  ] renderer   /usr/bin/chromium", "Chromium 120", "[ok  ] temp dir   /tmp", "Ready to export."},
		},
		{
			name: "not ready",
			d: diagnosis{
				Verdict: verdictErrors,
				Host:    hostInfo{Platform: "linux/arm64", Container: "/.dockerenv"},
				Errors:  []string{"rendering engine not found"},
			},
			want: []string{"[FAIL] renderer   not found", "container  /.dockerenv", "error: rendering engine not found", "Not ready"},
		},
		{
			name: "warnings",
			d: diagnosis{
				Verdict:  verdictWarnings,
				Renderer: rendererInfo{Found: true, Path: "/opt/chrome", EnvPath: "/opt/chrome"},
				Host:     hostInfo{Platform: "darwin/arm64", CI: true},
				TempDir:  tempDirInfo{Path: "/tmp", Writable: true},
				Warnings: []string{"container or CI detected"},
			},
			want: []string{hints.BrowserEnv + "=/opt/chrome", "ci         yes", "warning: container or CI detected", "with warnings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.d.writeText(&buf)
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("output missing %q:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"error\n  hint: x": "error",
		"single":           "single",
		"":                 "",
	} {
		if got := firstLine(in); got != want {
			t.Errorf("firstLine(%q) = %q, want %q", in, got, want)
		}
	}
}
