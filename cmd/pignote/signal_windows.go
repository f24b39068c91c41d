//go:build windows

package main

import "os"

// interruptSignals cancel a running export.
// Note: syscall.SIGTERM is not available on Windows.
var interruptSignals = []os.Signal{os.Interrupt}
