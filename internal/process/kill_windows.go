//go:build windows

// Package process isolates renderer processes in their own group so the
// whole tree can be killed at once.
package process

import (
	"os/exec"
	"strconv"
	"syscall"
)

// createNoWindow keeps the renderer from opening a console window.
const createNoWindow = 0x08000000

// Isolate makes cmd start in a new process group without a console window.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP | createNoWindow
}

// KillProcessGroup kills a process and all its children using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	// Best-effort; callers also kill the leader through os.Process.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- fixed binary, numeric pid
}
