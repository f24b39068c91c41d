package main

import (
	"context"
	"errors"
	"os"

	pignote "github.com/cemayhan20/PigNote"
	"github.com/cemayhan20/PigNote/internal/config"
	"github.com/cemayhan20/PigNote/internal/pipeline"
)

// Exit codes for the pignote CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126,
// and 128+SIGINT for a cancelled export.
const (
	ExitSuccess     = 0   // Successful export
	ExitGeneral     = 1   // General/unexpected error
	ExitUsage       = 2   // Invalid flags, config, or validation
	ExitIO          = 3   // File not found, permission denied
	ExitBrowser     = 4   // Renderer missing, failed or timed out
	ExitPostProcess = 5   // PDF written but footer crop failed
	ExitCanceled    = 130 // Export cancelled by signal
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, pignote.ErrCanceled) {
		return ExitCanceled
	}

	if errors.Is(err, pignote.ErrPDFStructure) {
		return ExitPostProcess
	}

	// Renderer errors (exit 4)
	if errors.Is(err, pignote.ErrRenderingEngineNotFound) ||
		errors.Is(err, pignote.ErrExternalProcess) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, pignote.ErrEmptyFilename) ||
		errors.Is(err, pignote.ErrUnsupportedFormat) ||
		errors.Is(err, pignote.ErrInvalidAssetPath) ||
		errors.Is(err, pipeline.ErrUnknownEngine) {
		return ExitUsage
	}

	return ExitGeneral
}
