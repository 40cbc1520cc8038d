package assets

import "embed"

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (*EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(embedded, styleAsset, name)
}

func (*EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readAsset(embedded, templateAsset, name)
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
