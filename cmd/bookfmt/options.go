package main

import (
	"fmt"

	"go.uber.org/zap"

	bookfmt "github.com/raj05122001/textbook-machine-sub001"
	"github.com/raj05122001/textbook-machine-sub001/internal/config"
)

// loadConfig reads the config file named by --config, or the defaults, and
// applies the command-line overrides.
func loadConfig(f *cliFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(f.common.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags copies the flags given on the command line into cfg.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	// Rendering
	if f.changed("engine") {
		cfg.Engine = f.render.engine
	}
	if f.changed("image-base-url") {
		cfg.Images.BaseURL = f.render.imageBaseURL
	}
	if f.changed("max-image-width") {
		cfg.Images.MaxWidth = f.render.maxImageWidth
	}
	if f.changed("max-image-height") {
		cfg.Images.MaxHeight = f.render.maxImageHeight
	}
	if f.changed("allow-tags") {
		cfg.AllowedRawTags = append([]string{}, f.render.allowTags...)
	}
	if f.changed("highlight") {
		cfg.Highlight = f.render.highlight
	}
	if f.changed("math") {
		cfg.Math.Renderer = f.render.math
	}
	if f.changed("math-cache") {
		cfg.Math.CacheTTL = f.render.mathCache
	}
	if f.changed("heading-ids") {
		cfg.HeadingIDs = f.render.headingIDs
	}

	// Document
	if f.changed("standalone") {
		cfg.Document.Standalone = f.document.standalone
	}
	if f.changed("style") {
		cfg.Document.Style = f.document.style
	}
	if f.changed("asset-path") {
		cfg.Assets.BasePath = f.document.assetPath
	}
	if f.changed("title") {
		cfg.Document.Title = f.document.title
	}
	if f.changed("lang") {
		cfg.Document.Lang = f.document.lang
	}

	// TOC: any TOC flag turns it on
	if f.changed("toc") {
		cfg.TOC.Enabled = f.document.toc
	}
	if f.changed("toc-title") {
		cfg.TOC.Title = f.document.tocTitle
		cfg.TOC.Enabled = true
	}
	if f.changed("toc-min-depth") {
		cfg.TOC.MinDepth = f.document.tocMinDepth
		cfg.TOC.Enabled = true
	}
	if f.changed("toc-max-depth") {
		cfg.TOC.MaxDepth = f.document.tocMaxDepth
		cfg.TOC.Enabled = true
	}

	// Output
	if f.changed("pdf") {
		cfg.PDF.Enabled = f.output.pdf
	}
	if f.changed("timeout") {
		cfg.PDF.Timeout = f.output.timeout
	}
	if f.changed("output") {
		cfg.Output.DefaultDir = f.output.output
	}
	if f.changed("workers") {
		cfg.Workers = f.output.workers
	}
}

// buildOptions translates a validated config into converter options.
func buildOptions(cfg *config.Config, log *zap.Logger) ([]bookfmt.Option, error) {
	opts := []bookfmt.Option{
		bookfmt.WithLogger(log),
		bookfmt.WithTimeout(cfg.PDFTimeout()),
	}

	if cfg.Engine != "" {
		opts = append(opts, bookfmt.WithEngine(cfg.Engine))
	}
	if cfg.Images.BaseURL != "" {
		opts = append(opts, bookfmt.WithImageBaseURL(cfg.Images.BaseURL))
	}
	if cfg.Images.MaxWidth != "" || cfg.Images.MaxHeight != "" {
		opts = append(opts, bookfmt.WithMaxImageSize(cfg.Images.MaxWidth, cfg.Images.MaxHeight))
	}
	if cfg.AllowedRawTags != nil {
		opts = append(opts, bookfmt.WithAllowedRawTags(cfg.AllowedRawTags...))
	}
	if cfg.Classes != nil {
		opts = append(opts, bookfmt.WithClasses(cfg.Classes))
	}
	if cfg.Highlight != "" {
		opts = append(opts, bookfmt.WithHighlighting(cfg.Highlight))
	}
	if cfg.HeadingIDs {
		opts = append(opts, bookfmt.WithHeadingIDs())
	}

	renderer, err := bookfmt.MathRendererByName(cfg.Math.Renderer, cfg.Math.Macros)
	if err != nil {
		return nil, err
	}
	opts = append(opts, bookfmt.WithMathRenderer(renderer))
	if ttl := cfg.CacheTTL(); ttl > 0 {
		opts = append(opts, bookfmt.WithTypesetCache(ttl))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, bookfmt.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Document.Style != "" {
		opts = append(opts, bookfmt.WithStyle(cfg.Document.Style))
	}
	if cfg.Document.Title != "" {
		opts = append(opts, bookfmt.WithTitle(cfg.Document.Title))
	}
	if cfg.Document.Lang != "" {
		opts = append(opts, bookfmt.WithLang(cfg.Document.Lang))
	}
	if cfg.TOC.Enabled {
		opts = append(opts, bookfmt.WithTOC(bookfmt.TOC{
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOCMinDepth(),
			MaxDepth: cfg.TOCMaxDepth(),
		}))
	}

	return opts, nil
}
