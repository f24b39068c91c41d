package assets

import "errors"

// Sentinel errors for asset loading.
var (
	// ErrTemplateNotFound and ErrIconNotFound are the only errors an
	// AssetResolver falls back on.
	ErrTemplateNotFound = errors.New("layout not found")
	ErrIconNotFound     = errors.New("icon not found")

	// ErrTemplateParse is returned by LoadTemplateSet for a layout that is
	// not valid html/template source.
	ErrTemplateParse = errors.New("layout parse failed")

	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrAssetRead        = errors.New("reading asset failed")
	ErrPathTraversal    = errors.New("asset path escapes asset directory")
)
