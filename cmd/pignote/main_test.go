package main

// Notes:
// - Commands are driven through run() with an Environment writing to buffers,
//   so exit codes and output are observed the way a shell would see them.
// - Signals is left nil unless a test exercises cancellation.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testEnv returns an Environment capturing output, with a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return &Environment{
		Now:    func() time.Time { return now },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// writeNote writes content to name inside a fresh temp directory.
func writeNote(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing note: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRun - Command Dispatch
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", nil, ExitUsage, "", "Usage: pignote"},
		{"unknown command", []string{"convert"}, ExitUsage, "", "unknown command: convert"},
		{"version", []string{"version"}, ExitSuccess, "pignote dev", ""},
		{"version flag", []string{"--version"}, ExitSuccess, "pignote dev", ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help export", []string{"help", "export"}, ExitSuccess, "--footer-crop", ""},
		{"help inspect", []string{"help", "inspect"}, ExitSuccess, "pignote inspect", ""},
		{"help doctor", []string{"help", "doctor"}, ExitSuccess, "pignote doctor", ""},
		{"help unknown", []string{"help", "nope"}, ExitSuccess, "Unknown command: nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			if got := run(context.Background(), tt.args, env); got != tt.wantCode {
				t.Errorf("run() = %d, want %d", got, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestHasFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args  []string
		names []string
		want  bool
	}{
		{[]string{"export", "-v", "a.md"}, []string{"--verbose", "-v"}, true},
		{[]string{"export", "--verbose"}, []string{"--verbose", "-v"}, true},
		{[]string{"export", "-q"}, []string{"--verbose", "-v"}, false},
		{nil, []string{"--json"}, false},
	}

	for _, tt := range tests {
		if got := hasFlag(tt.args, tt.names...); got != tt.want {
			t.Errorf("hasFlag(%q, %q) = %v, want %v", tt.args, tt.names, got, tt.want)
		}
	}
}
