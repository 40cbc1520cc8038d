// Package assets provides the stylesheets and page template used for
// standalone textbook documents.
//
// Assets come from one of two places:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in textbook.css and document.html
//	    ├── FilesystemLoader  - a user directory on disk
//	    └── AssetResolver     - filesystem first, embedded as fallback
//
// A custom directory mirrors the embedded layout:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// Asset names are plain identifiers. FilesystemLoader reads through os.Root,
// so a symlink leading out of basePath fails with ErrAssetRead.
package assets
