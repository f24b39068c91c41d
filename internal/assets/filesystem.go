package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads assets from a directory laid out like the embedded
// set: templates/<name>.html and icons/<name>.{svg,png}.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader opens basePath, which must be a readable directory.
// Failures wrap ErrInvalidBasePath.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	// ReadDir covers existence, type and permission in one call.
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBasePath, root, err)
	}
	return &FilesystemLoader{root: root}, nil
}

// LoadTemplate implements AssetLoader.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := f.read("templates", name+".html")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadIcon implements AssetLoader.
func (f *FilesystemLoader) LoadIcon(name string) ([]byte, string, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, "", err
	}

	for _, ie := range iconExtensions {
		data, err := f.read("icons", name+ie.ext)
		if err == nil {
			return data, ie.mime, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("%w: %q", ErrIconNotFound, name)
}

// read returns the content of root/dir/file. The path, with symlinks
// resolved, must stay under root. A missing file yields fs.ErrNotExist.
func (f *FilesystemLoader) read(dir, file string) ([]byte, error) {
	path := filepath.Join(f.root, dir, file)

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	rel, err := filepath.Rel(f.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s/%s", ErrPathTraversal, dir, file)
	}

	data, err := os.ReadFile(resolved) // #nosec G304 -- confined to root above
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return data, nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
