//go:build !windows

package main

import (
	"os"
	"syscall"
)

// interruptSignals cancel a running export.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
