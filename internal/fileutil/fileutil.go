// Package fileutil holds small file helpers shared by the exporter and CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
)

// ErrInvalidExtension is returned for an extension that is empty or holds
// anything but ASCII letters and digits.
var ErrInvalidExtension = errors.New("invalid file extension")

// TempPrefix starts the name of every temporary file created by WriteTempFile.
const TempPrefix = "pignote-"

// WriteTempFile stores content in a new file named pignote-*.<ext> in the
// system temp directory. cleanup removes the file and may be called more
// than once.
func WriteTempFile(content, ext string) (path string, cleanup func(), err error) {
	if !validExtension(ext) {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}

	f, err := os.CreateTemp("", TempPrefix+"*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = RemoveIfExists(path) }

	_, err = f.WriteString(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}

func validExtension(ext string) bool {
	if ext == "" {
		return false
	}
	for _, r := range ext {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// FileExists reports whether path names a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// NonEmptyFile reports whether path names a regular file of at least one byte.
func NonEmptyFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// RemoveIfExists deletes path. A missing file is not an error.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
