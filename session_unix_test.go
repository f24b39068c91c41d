//go:build !windows

package pignote

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// waitDone fails the test if f does not return within d.
func waitDone(t *testing.T, d time.Duration, f func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		f()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("timed out")
	}
}

func TestSession_StartWait_ExitCode(t *testing.T) {
	t.Parallel()
	requireShell(t)

	tests := []struct {
		script string
		want   int
	}{
		{"exit 0", 0},
		{"exit 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			t.Parallel()

			s := NewSession()
			p, err := s.Start(context.Background(), "sh", "-c", tt.script)
			if err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			if p.Pid() <= 0 {
				t.Errorf("Pid() = %d", p.Pid())
			}

			code, err := s.Wait(context.Background(), p)
			if err != nil {
				t.Fatalf("Wait() error = %v", err)
			}
			if code != tt.want {
				t.Errorf("Wait() code = %d, want %d", code, tt.want)
			}
			if s.Active() {
				t.Error("Active() = true after Wait")
			}
		})
	}
}

func TestSession_WaitContextDoneKills(t *testing.T) {
	t.Parallel()
	requireShell(t)

	s := NewSession()
	p, err := s.Start(context.Background(), "sh", "-c", "sleep 30")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	waitDone(t, 10*time.Second, func() {
		code, err := s.Wait(ctx, p)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
		}
		if code != -1 {
			t.Errorf("Wait() code = %d, want -1", code)
		}
	})
	if s.Active() {
		t.Error("Active() = true after Wait")
	}
}

func TestSession_CancelKillsRunningProcess(t *testing.T) {
	t.Parallel()
	requireShell(t)

	s := NewSession()
	ctx, end := s.Begin(context.Background())
	defer end()

	p, err := s.Start(ctx, "sh", "-c", "sleep 30 & wait")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.Active() {
		t.Fatal("Active() = false while running")
	}

	s.Cancel()

	waitDone(t, 10*time.Second, func() {
		// ctx is already cancelled, so either branch of Wait may win; both
		// leave the process reaped.
		_, _ = s.Wait(ctx, p)
	})
	if !s.CancelRequested() {
		t.Error("CancelRequested() = false after Cancel")
	}
	if s.Active() {
		t.Error("Active() = true after Wait")
	}
}

func TestSession_StartKillsStaleProcess(t *testing.T) {
	t.Parallel()
	requireShell(t)

	s := NewSession()
	first, err := s.Start(context.Background(), "sh", "-c", "sleep 30")
	if err != nil {
		t.Fatalf("Start(first) error = %v", err)
	}

	second, err := s.Start(context.Background(), "sh", "-c", "exit 0")
	if err != nil {
		t.Fatalf("Start(second) error = %v", err)
	}

	waitDone(t, 10*time.Second, func() { <-first.done })

	// Waiting on the preempted process must not clear the new one.
	if _, err := s.Wait(context.Background(), first); err != nil {
		t.Errorf("Wait(first) error = %v", err)
	}
	if !s.Active() {
		t.Error("Wait(first) cleared the slot holding the second process")
	}

	if code, err := s.Wait(context.Background(), second); err != nil || code != 0 {
		t.Errorf("Wait(second) = %d, %v; want 0, nil", code, err)
	}
	if s.Active() {
		t.Error("Active() = true after Wait(second)")
	}
}

func TestSession_StartClearsPendingCancel(t *testing.T) {
	t.Parallel()
	requireShell(t)

	s := NewSession()
	s.cancelRequested.Store(true)

	p, err := s.Start(context.Background(), "sh", "-c", "exit 0")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.CancelRequested() {
		t.Error("Start() did not clear the cancellation flag")
	}
	_, _ = s.Wait(context.Background(), p)
}
