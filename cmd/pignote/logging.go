package main

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger on w. Info by default, debug with
// verbose, errors only with quiet. quiet wins when both are set.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
