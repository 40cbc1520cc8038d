package bookfmt

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/raj05122001/textbook-machine-sub001/internal/pipeline"
	"github.com/raj05122001/textbook-machine-sub001/internal/typeset"
)

// Compile-time interface implementation checks.
var (
	_ MathRenderer = (*typeset.MathML)(nil)
	_ MathRenderer = (*typeset.Unicode)(nil)
	_ MathRenderer = (*typeset.Cached)(nil)
	_ MathRenderer = MathRendererFunc(nil)
)

// Converter turns textbook Markdown into styled HTML, typesets its math,
// and optionally wraps it in a standalone page or exports it to PDF.
// Create with NewConverter, use Convert, and Close when done.
//
// RenderToHTML, Typeset, and Mount are safe for concurrent use. PDF export
// is serialized per Converter; use a ConverterPool for parallel export.
type Converter struct {
	cfg         converterConfig
	log         *zap.Logger
	renderer    *pipeline.Renderer
	highlighter *pipeline.Highlighter
	math        MathRenderer
	mathSet     bool
	assets      *loadedAssets
	document    *pipeline.Document

	pdfMu        sync.Mutex
	pdfConverter pdfConverter
}

// NewConverter creates a Converter. It returns an error when an option holds
// an invalid value or the page assets cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
		log: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.toc.Validate(); err != nil {
		return nil, err
	}

	if !c.mathSet {
		c.math = NewMathMLRenderer(nil)
	}
	if c.math != nil && c.cfg.useCache {
		c.math = NewCachedRenderer(c.math, c.cfg.cacheTTL)
	}

	if c.cfg.highlight != "" {
		h, err := pipeline.NewHighlighter(c.cfg.highlight)
		if err != nil {
			return nil, err
		}
		c.highlighter = h
	}

	renderer, err := pipeline.NewRenderer(pipeline.Options{
		Engine:         c.cfg.engine,
		AllowedRawTags: c.cfg.allowedRawTags,
		Presentation: pipeline.Presentation{
			Classes:        c.cfg.classes,
			ImageBaseURL:   c.cfg.imageBaseURL,
			MaxImageWidth:  c.cfg.maxImageWidth,
			MaxImageHeight: c.cfg.maxImageHeight,
		},
		HeadingIDs:  c.cfg.headingIDs,
		Highlighter: c.highlighter,
		Logger:      c.log,
	})
	if err != nil {
		return nil, err
	}
	c.renderer = renderer

	c.assets, err = loadAssets(c.cfg.assetPath, c.cfg.style)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	c.document, err = pipeline.NewDocument(c.assets.template)
	if err != nil {
		return nil, err
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// RenderToHTML converts source to an HTML fragment and lists its math
// spans. Math elements hold their escaped LaTeX until mounted. It never
// fails: unrecognized syntax is kept as escaped text.
func (c *Converter) RenderToHTML(source string) Result {
	out := c.renderer.Render(source)
	return Result{HTML: out.HTML, Math: out.Math}
}

// Typeset renders spans with the converter's MathRenderer. It returns nil
// when typesetting is disabled.
func (c *Converter) Typeset(ctx context.Context, spans []MathSpan) ([]TypesetSpan, error) {
	return typesetSpans(ctx, c.math, spans, c.log)
}

// Mount replaces the content of each math element with its typeset markup.
func (c *Converter) Mount(htmlContent string, spans []TypesetSpan) (string, error) {
	return Mount(htmlContent, spans)
}

// Convert runs the full pipeline: render, typeset, mount, then the optional
// standalone page and PDF export.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rendered := c.RenderToHTML(input.Markdown)

	spans, err := c.Typeset(ctx, rendered.Math)
	if err != nil {
		return nil, err
	}

	htmlContent, err := c.Mount(rendered.HTML, spans)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{
		HTML:    htmlContent,
		Math:    rendered.Math,
		Typeset: spans,
	}
	c.log.Debug("rendered document",
		zap.Int("bytes", len(htmlContent)),
		zap.Int("math", len(rendered.Math)))

	if !input.Standalone && !input.PDF {
		return res, nil
	}

	page, err := c.page(ctx, htmlContent, input.Title)
	if err != nil {
		return nil, fmt.Errorf("building page: %w", err)
	}
	res.HTML = page

	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.exportPDF(ctx, pipeline.InjectCSS(page, c.assets.print))
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// page wraps a mounted fragment in the document template.
func (c *Converter) page(ctx context.Context, body, title string) (string, error) {
	if title == "" {
		title = c.cfg.title
	}
	if title == "" {
		title = pipeline.FirstHeading(body)
	}

	data := &pipeline.DocumentData{
		Title: title,
		Lang:  c.cfg.lang,
		Body:  body,
		CSS:   []string{c.assets.style},
	}
	if c.highlighter != nil {
		data.CSS = append(data.CSS, c.highlighter.CSS())
	}
	if c.cfg.toc != nil {
		minDepth, maxDepth := c.cfg.toc.depths()
		data.Outline = pipeline.Outline(body, minDepth, maxDepth)
		data.OutlineTitle = c.cfg.toc.Title
	}

	return c.document.Render(ctx, data)
}

func (c *Converter) exportPDF(ctx context.Context, page string) ([]byte, error) {
	c.pdfMu.Lock()
	defer c.pdfMu.Unlock()
	return c.pdfConverter.ToPDF(ctx, page)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	c.pdfMu.Lock()
	defer c.pdfMu.Unlock()
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
