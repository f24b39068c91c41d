package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed templates/*.html icons/*
var builtin embed.FS

// EmbeddedLoader serves the layouts and icons compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: builtin}
}

// LoadTemplate implements AssetLoader.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	src, err := fs.ReadFile(e.fsys, "templates/"+name+".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return string(src), nil
}

// LoadIcon implements AssetLoader.
func (e *EmbeddedLoader) LoadIcon(name string) ([]byte, string, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, "", err
	}
	for _, ie := range iconExtensions {
		data, err := fs.ReadFile(e.fsys, "icons/"+name+ie.ext)
		if err == nil {
			return data, ie.mime, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %q", ErrIconNotFound, name)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
