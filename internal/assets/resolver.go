package assets

import "errors"

// AssetResolver serves assets from a custom directory when one is set and
// falls back to the embedded set for any asset the directory lacks. Other
// errors from the custom directory are returned as is.
type AssetResolver struct {
	custom   AssetLoader // nil when no directory is configured
	embedded AssetLoader
}

// NewAssetResolver returns a resolver over customBasePath, or over the
// embedded assets alone when customBasePath is empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	custom, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = custom
	return r, nil
}

// LoadTemplate implements AssetLoader.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) {
		return l.LoadTemplate(name)
	})
}

// LoadIcon implements AssetLoader.
func (r *AssetResolver) LoadIcon(name string) ([]byte, string, error) {
	type icon struct {
		data []byte
		mime string
	}
	got, err := withFallback(r, func(l AssetLoader) (icon, error) {
		data, mime, err := l.LoadIcon(name)
		return icon{data, mime}, err
	})
	return got.data, got.mime, err
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func withFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom != nil {
		v, err := load(r.custom)
		if err == nil || !isNotFoundError(err) {
			return v, err
		}
	}
	return load(r.embedded)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrTemplateNotFound) || errors.Is(err, ErrIconNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
