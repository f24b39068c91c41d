package main

import (
	"os"
	"os/signal"
)

// onInterrupt calls cancel once per received interrupt or termination
// signal. stop unregisters the handler; it must be called exactly once.
func onInterrupt(cancel func()) (stop func()) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, interruptSignals...)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigc:
				cancel()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigc)
		close(done)
	}
}
