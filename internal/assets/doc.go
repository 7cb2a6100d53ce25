// Package assets provides the document template and CSS styles wrapped
// around converted Markdown. Assets can be loaded from embedded files or
// from a custom directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed filesystem (built-in styles and template)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css        # e.g. default.css, plain.css
//	└── templates/
//	    └── {name}.html       # e.g. document.html
//
// A custom directory may override only some assets; anything missing falls
// back to the embedded copy.
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
