package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// AssetLoader loads stylesheets and templates by name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css, or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns templates/{name}.html, or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

// maxAssetNameLen bounds asset names to something that fits in a filename.
const maxAssetNameLen = 64

// ValidateAssetName checks that name can be used as a bare filename.
// Separators and dots are rejected so a name can never select another
// directory or extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLen || strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// assetKind locates one family of assets inside an asset tree.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleAsset    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateAsset = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// readAsset reads the named asset of kind k from fsys. Only a missing file
// yields the kind's not-found error.
func readAsset(fsys fs.FS, k assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := fs.ReadFile(fsys, path.Join(k.dir, name+k.ext))
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}
