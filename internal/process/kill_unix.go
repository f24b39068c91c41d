//go:build !windows

// Package process isolates renderer processes in their own group so the
// whole tree can be killed at once.
package process

import (
	"os/exec"
	"syscall"
)

// Isolate makes cmd start as the leader of a new process group.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; callers also kill the leader through os.Process.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
