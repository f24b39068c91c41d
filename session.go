package pignote

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/cemayhan20/PigNote/internal/process"
)

// Session tracks the running export so it can be cancelled from another
// goroutine. At most one renderer process is held at a time: starting a new
// one kills the previous one.
//
// The zero value is not usable; create one with NewSession.
type Session struct {
	cancelRequested atomic.Bool

	mu      sync.Mutex
	current *Process
	job     *job
}

// job is the export registered by Begin.
type job struct {
	cancel context.CancelFunc
}

// Process is a renderer started by Session.Start.
type Process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error // set before done is closed
}

// NewSession creates an idle Session.
func NewSession() *Session {
	return &Session{}
}

// Begin registers an export and returns its context. end must be called when
// the export returns. A cancellation requested while no export was running
// applies to this one: the returned context is already done.
func (s *Session) Begin(parent context.Context) (ctx context.Context, end func()) {
	ctx, cancel := context.WithCancel(parent)
	j := &job{cancel: cancel}

	s.mu.Lock()
	s.job = j
	if s.cancelRequested.Load() {
		cancel()
	}
	s.mu.Unlock()

	return ctx, func() {
		s.mu.Lock()
		if s.job == j {
			s.job = nil
		}
		s.mu.Unlock()
		cancel()
	}
}

// Start spawns name with args in its own process group, with every standard
// stream bound to the null device. It refuses to start once ctx is done.
// Any process still held from an earlier export is killed first.
func (s *Session) Start(ctx context.Context, name string, args ...string) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.cancelRequested.Store(false)

	if s.current != nil {
		s.current.kill()
		s.current = nil
	}

	cmd := exec.Command(name, args...) // #nosec G204 -- renderer path resolved by FindBrowser
	process.Isolate(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting %s: %v", ErrExternalProcess, name, err)
	}

	p := &Process{cmd: cmd, done: make(chan struct{})}
	go func() {
		p.err = cmd.Wait()
		close(p.done)
	}()

	s.current = p
	return p, nil
}

// Wait blocks until p exits or ctx is done, in which case p is killed and
// reaped before returning ctx.Err(). A process killed by a signal reports
// exit code -1. The slot is cleared only if it still holds p.
func (s *Session) Wait(ctx context.Context, p *Process) (exitCode int, err error) {
	defer s.release(p)

	select {
	case <-p.done:
	case <-ctx.Done():
		p.kill()
		<-p.done
		return -1, ctx.Err()
	}

	var exitErr *exec.ExitError
	if p.err != nil && !errors.As(p.err, &exitErr) {
		return -1, fmt.Errorf("%w: %v", ErrExternalProcess, p.err)
	}
	return p.cmd.ProcessState.ExitCode(), nil
}

// Cancel stops the running export: it records the request, cancels the
// export's context and kills the renderer. Safe to call at any time and
// more than once.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelRequested.Store(true)
	if s.job != nil {
		s.job.cancel()
	}
	if s.current != nil {
		s.current.kill()
	}
}

// Active reports whether a renderer process is held.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// CancelRequested reports whether a cancellation is pending.
func (s *Session) CancelRequested() bool {
	return s.cancelRequested.Load()
}

// consumeCancel clears a pending cancellation and reports whether there was one.
func (s *Session) consumeCancel() bool {
	return s.cancelRequested.CompareAndSwap(true, false)
}

func (s *Session) release(p *Process) {
	s.mu.Lock()
	if s.current == p {
		s.current = nil
	}
	s.mu.Unlock()
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// kill terminates the process group and the leader. No-op once exited.
func (p *Process) kill() {
	select {
	case <-p.done:
		return
	default:
	}
	process.KillProcessGroup(p.cmd.Process.Pid)
	_ = p.cmd.Process.Kill()
}
