package pipeline

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders fenced code with chroma, using CSS classes so the
// output stays small and the colors live in a stylesheet.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter creates a Highlighter for a chroma style name.
// Returns ErrUnknownStyle if the style is not registered.
func NewHighlighter(styleName string) (*Highlighter, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	return &Highlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}, nil
}

// Highlight returns the highlighted body of code, ready to sit inside
// <pre><code>. ok is false when highlighting failed; callers then fall back
// to plain escaped code.
func (h *Highlighter) Highlight(lang, code string) (out string, ok bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", false
	}
	return b.String(), true
}

// CSS returns the stylesheet for the highlighter's classes.
func (h *Highlighter) CSS() string {
	var b strings.Builder
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return ""
	}
	return b.String()
}
