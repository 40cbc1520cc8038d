package assets

// AssetResolver prefers assets from a custom directory and falls back to the
// embedded ones when an asset is missing there.
type AssetResolver struct {
	loaders []AssetLoader // custom first when configured
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// only embedded assets; an invalid one returns ErrInvalidBasePath.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.loaders = append(r.loaders, custom)
	}
	r.loaders = append(r.loaders, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// first returns the asset from the first loader that has it. Any error other
// than not-found stops the search.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.loaders {
		var content string
		if content, err = load(l); err == nil || !isNotFound(err) {
			return content, err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.loaders) > 1
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
