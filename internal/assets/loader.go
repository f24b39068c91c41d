package assets

// AssetLoader supplies layout sources and icons by name. Names carry no
// extension and must pass ValidateAssetName.
type AssetLoader interface {
	// LoadTemplate returns the html/template source of a layout, or an
	// error wrapping ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)

	// LoadIcon returns the icon bytes and their MIME type, or an error
	// wrapping ErrIconNotFound.
	LoadIcon(name string) ([]byte, string, error)
}

// iconExtensions lists the icon formats in lookup order.
var iconExtensions = []struct {
	ext  string
	mime string
}{
	{".svg", "image/svg+xml"},
	{".png", "image/png"},
}
