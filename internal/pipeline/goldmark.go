package pipeline

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// goldmarkEngine parses blocks with goldmark. Placeholder tokens are made of
// private-use runes and digits, so they pass through goldmark untouched and
// WithUnsafe is not needed.
type goldmarkEngine struct {
	md goldmark.Markdown
}

func newGoldmarkEngine(h *Highlighter) *goldmarkEngine {
	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if h != nil {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithCustomStyle(h.style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}
	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
		),
	)
	return &goldmarkEngine{md: md}
}

// renderGoldmark runs the shared protection steps around goldmark. Code is
// shielded only while math is extracted, then handed back to goldmark so
// fenced blocks get its rendering and highlighting.
func (r *Renderer) renderGoldmark(source string) (Output, error) {
	text := Normalize(source)
	a := newArena(text)

	text = shieldCode(text, a)
	text = r.tags.protect(text, a)
	text = extractMath(text, a)
	for i := range a.fragments {
		if k := a.fragments[i].kind; k == kindMathBlock || k == kindMathInline {
			a.fragments[i].text = EscapeHTML(a.fragments[i].text)
		}
	}
	// Tags outside the whitelist are shown as text, as in the regex engine.
	text = strings.ReplaceAll(text, "<", "&lt;")
	text, _ = a.restore(text, isShield, func(f *fragment) string { return f.text })

	var buf bytes.Buffer
	if err := r.goldmark.md.Convert([]byte(text), &buf); err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	return r.finish(unwrapBlockTokens(buf.String(), a), a), nil
}

// Shield kinds reuse the code kinds but keep the original source text.
func isShield(k fragmentKind) bool {
	return k == kindCodeBlock || k == kindInlineCode
}

// shieldCode replaces fenced and inline code with tokens that restore to the
// original Markdown, protecting code from math extraction.
func shieldCode(text string, a *arena) string {
	text = codeFencePattern.ReplaceAllStringFunc(text, func(match string) string {
		return a.add(fragment{kind: kindCodeBlock, text: match})
	})
	return inlineCodePattern.ReplaceAllStringFunc(text, func(match string) string {
		return a.add(fragment{kind: kindInlineCode, text: match})
	})
}

// unwrapBlockTokens removes the <p> goldmark puts around a lone block token.
func unwrapBlockTokens(out string, a *arena) string {
	q := regexp.QuoteMeta(a.marker)
	lone := regexp.MustCompile(`<p>(` + q + `[MT]\d+` + q + `)</p>`)
	return lone.ReplaceAllStringFunc(out, func(match string) string {
		tok := lone.FindStringSubmatch(match)[1]
		f, ok := a.leadingFragment(tok)
		if !ok {
			return match
		}
		if f.kind == kindMathBlock || (f.kind == kindRawTag && blockTags[f.tag]) {
			return tok
		}
		return match
	})
}
