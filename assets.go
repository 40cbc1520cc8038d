package bookfmt

import (
	"errors"
	"fmt"

	"github.com/raj05122001/textbook-machine-sub001/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the stylesheet of standalone documents.
	DefaultStyle = assets.DefaultStyleName

	// PrintStyle is added on top of the document style for PDF export.
	PrintStyle = assets.PrintStyleName
)

// loadedAssets holds what a standalone document needs.
type loadedAssets struct {
	template string
	style    string
	print    string
}

// loadAssets reads the page template and stylesheets, preferring files under
// basePath and falling back to the embedded ones.
func loadAssets(basePath, style string) (*loadedAssets, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}

	if style == "" {
		style = DefaultStyle
	}

	var out loadedAssets
	if out.template, err = resolver.LoadTemplate(assets.DocumentTemplateName); err != nil {
		return nil, convertAssetError(err)
	}
	if out.style, err = resolver.LoadStyle(style); err != nil {
		return nil, convertAssetError(err)
	}
	if out.print, err = resolver.LoadStyle(PrintStyle); err != nil {
		return nil, convertAssetError(err)
	}
	return &out, nil
}

// convertAssetError reports unusable asset directories and names as
// ErrInvalidAssetPath. Not-found errors are already public sentinels.
func convertAssetError(err error) error {
	switch {
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrAssetRead),
		errors.Is(err, assets.ErrInvalidAssetName):
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	default:
		return err
	}
}
