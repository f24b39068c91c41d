// Package assets provides the HTML layouts and icons used to package exports.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in layouts)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when an asset is not found, so a user can override a single
// layout while keeping the others.
//
// # Directory Structure
//
//	{basePath}/
//	├── templates/
//	│   ├── page-light.html     # standalone HTML export
//	│   ├── page-dark.html
//	│   ├── print-light.html    # PDF renderer input
//	│   ├── print-dark.html
//	│   ├── chunk-light.html    # DOCX altChunk
//	│   └── chunk-dark.html
//	└── icons/
//	    └── brand.svg           # or brand.png
//
// Layouts are html/template sources executed with PageData.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
