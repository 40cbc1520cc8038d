package bookfmt

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	engine         string
	imageBaseURL   string
	maxImageWidth  string
	maxImageHeight string
	allowedRawTags []string
	classes        map[string]string
	highlight      string
	headingIDs     bool
	cacheTTL       time.Duration
	useCache       bool
	assetPath      string
	style          string
	title          string
	lang           string
	toc            *TOC
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("bookfmt: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the block parser: EngineRegex (default) or
// EngineGoldmark. NewConverter returns ErrInvalidEngine for other names.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithImageBaseURL sets the prefix added to relative image sources.
func WithImageBaseURL(base string) Option {
	return func(c *Converter) {
		c.cfg.imageBaseURL = base
	}
}

// WithMaxImageSize caps the rendered size of images with CSS lengths.
// Empty values keep DefaultMaxImageWidth and DefaultMaxImageHeight.
func WithMaxImageSize(width, height string) Option {
	return func(c *Converter) {
		c.cfg.maxImageWidth = width
		c.cfg.maxImageHeight = height
	}
}

// WithAllowedRawTags replaces the raw HTML tags passed through verbatim.
// An empty list escapes every tag.
func WithAllowedRawTags(tags ...string) Option {
	return func(c *Converter) {
		c.cfg.allowedRawTags = append([]string{}, tags...)
	}
}

// WithClasses replaces the class vocabulary added to generated tags.
// A tag missing from classes gets no class attribute.
func WithClasses(classes map[string]string) Option {
	return func(c *Converter) {
		c.cfg.classes = classes
	}
}

// WithHighlighting highlights fenced code with a chroma style, such as
// "github" or "monokai".
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = style
	}
}

// WithHeadingIDs adds slug ids to generated headings so they can be linked.
func WithHeadingIDs() Option {
	return func(c *Converter) {
		c.cfg.headingIDs = true
	}
}

// WithMathRenderer sets the renderer used by Typeset. nil disables
// typesetting and leaves math as escaped LaTeX.
func WithMathRenderer(r MathRenderer) Option {
	return func(c *Converter) {
		c.math = r
		c.mathSet = true
	}
}

// WithTypesetCache memoizes typeset expressions for ttl. A ttl of zero or
// less keeps them for the converter's lifetime.
func WithTypesetCache(ttl time.Duration) Option {
	return func(c *Converter) {
		c.cfg.useCache = true
		c.cfg.cacheTTL = ttl
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithAssetPath loads the page template and stylesheets from dir, falling
// back to the embedded ones for missing files.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithStyle selects the stylesheet of standalone pages by name.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// WithTitle sets the default title of standalone pages.
func WithTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.title = title
	}
}

// WithLang sets the lang attribute of standalone pages (default "en").
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}

// WithTOC adds a table of contents to standalone pages. Headings get ids.
func WithTOC(toc TOC) Option {
	return func(c *Converter) {
		c.cfg.toc = &toc
		c.cfg.headingIDs = true
	}
}
