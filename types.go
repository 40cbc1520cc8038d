package bookfmt

import (
	"fmt"
	"time"

	"github.com/raj05122001/textbook-machine-sub001/internal/pipeline"
	"github.com/raj05122001/textbook-machine-sub001/internal/typeset"
)

// Engine names.
const (
	EngineRegex    = pipeline.EngineRegex
	EngineGoldmark = pipeline.EngineGoldmark
)

// Math renderer names accepted by MathRendererByName.
const (
	MathMathML  = "mathml"
	MathUnicode = "unicode"
	MathNone    = "none"
)

// Default image caps.
const (
	DefaultMaxImageWidth  = pipeline.DefaultMaxImageWidth
	DefaultMaxImageHeight = pipeline.DefaultMaxImageHeight
)

// TOC depth bounds and defaults.
const (
	MinTOCDepth        = 1
	MaxTOCDepth        = 6
	DefaultTOCMinDepth = 1
	DefaultTOCMaxDepth = 3
)

// MathSpan is a LaTeX expression found by RenderToHTML. Its ID matches the
// data-math-id attribute of the element holding it.
type MathSpan = pipeline.MathSpan

// RenderOptions is passed to a MathRenderer for one expression.
type RenderOptions = typeset.Options

// MathRenderer typesets one LaTeX expression to HTML markup.
type MathRenderer = typeset.Renderer

// MathRendererFunc adapts a function to MathRenderer.
type MathRendererFunc = typeset.Func

// TypesetSpan is the typeset form of a MathSpan. When rendering failed, Err
// records why and Markup holds the escaped LaTeX source.
type TypesetSpan struct {
	ID     int
	Markup string
	Err    error
}

// Result is the output of RenderToHTML.
type Result struct {
	HTML string
	Math []MathSpan
}

// Input contains per-conversion parameters.
type Input struct {
	Markdown string // Source text (Markdown with raw HTML and LaTeX)

	// Title of the standalone page. Empty uses the converter's title, then
	// the first h1.
	Title string

	Standalone bool // Wrap the fragment in a full HTML page
	PDF        bool // Also export the page to PDF (implies Standalone)
}

// ConvertResult holds the output of Convert.
type ConvertResult struct {
	HTML    string        // Fragment or standalone page with math mounted
	Math    []MathSpan    // Spans found in the source
	Typeset []TypesetSpan // Typeset markup per span, nil without a renderer
	PDF     []byte        // PDF bytes (nil unless Input.PDF)
}

// TOC configures the table of contents of standalone pages.
type TOC struct {
	Title    string
	MinDepth int // 1-6, 0 = DefaultTOCMinDepth
	MaxDepth int // 1-6, 0 = DefaultTOCMaxDepth
}

// Validate checks that TOC depths are valid.
// Returns nil if t is nil (nil means no TOC).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	if minDepth < MinTOCDepth || minDepth > MaxTOCDepth {
		return fmt.Errorf("%w: minDepth %d (must be %d-%d)", ErrInvalidTOCDepth, minDepth, MinTOCDepth, MaxTOCDepth)
	}
	if maxDepth < MinTOCDepth || maxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: maxDepth %d (must be %d-%d)", ErrInvalidTOCDepth, maxDepth, MinTOCDepth, MaxTOCDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d exceeds maxDepth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

// depths applies the defaults to zero depths.
func (t *TOC) depths() (int, int) {
	minDepth, maxDepth := t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}

// NewMathMLRenderer returns a renderer producing MathML. macros maps command
// names such as `\R` to their expansion.
func NewMathMLRenderer(macros map[string]string) MathRenderer {
	return typeset.NewMathML(macros)
}

// NewUnicodeRenderer returns a renderer producing plain Unicode text, for
// targets without MathML support.
func NewUnicodeRenderer() MathRenderer {
	return typeset.NewUnicode()
}

// NewCachedRenderer memoizes successful renders of next for ttl. A ttl of
// zero or less keeps entries until the process exits.
func NewCachedRenderer(next MathRenderer, ttl time.Duration) MathRenderer {
	return typeset.NewCached(next, ttl)
}

// MathRendererByName returns the renderer for MathMathML or MathUnicode, or
// nil for MathNone.
func MathRendererByName(name string, macros map[string]string) (MathRenderer, error) {
	switch name {
	case MathMathML, "":
		return NewMathMLRenderer(macros), nil
	case MathUnicode:
		return NewUnicodeRenderer(), nil
	case MathNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s, %s, or %s)", ErrInvalidMathRenderer, name, MathMathML, MathUnicode, MathNone)
	}
}
