package pipeline

import (
	"fmt"
	"html"

	"go.uber.org/zap"
)

// Engine names.
const (
	EngineRegex    = "regex"
	EngineGoldmark = "goldmark"
)

// Options configures a Renderer.
type Options struct {
	// Engine selects the block parser: EngineRegex (default) or EngineGoldmark.
	Engine string

	// AllowedRawTags overrides DefaultRawTags when non-nil. An empty,
	// non-nil slice escapes every tag.
	AllowedRawTags []string

	Presentation Presentation

	// HeadingIDs adds slug ids to generated headings.
	HeadingIDs bool

	// Highlighter renders fenced code when set.
	Highlighter *Highlighter

	Logger *zap.Logger
}

// Output is the result of rendering one document.
type Output struct {
	HTML string
	Math []MathSpan
}

// Renderer converts Markdown with embedded HTML and LaTeX to styled HTML.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	engine      string
	tags        *rawTagMatcher
	present     Presentation
	headingIDs  bool
	highlighter *Highlighter
	goldmark    *goldmarkEngine
	log         *zap.Logger
}

// NewRenderer validates opts and builds a Renderer.
func NewRenderer(opts Options) (*Renderer, error) {
	names := opts.AllowedRawTags
	if names == nil {
		names = DefaultRawTags
	}
	tags, err := newRawTagMatcher(names)
	if err != nil {
		return nil, err
	}

	for _, size := range []string{opts.Presentation.MaxImageWidth, opts.Presentation.MaxImageHeight} {
		if size == "" {
			continue
		}
		if err := ValidateImageSize(size); err != nil {
			return nil, err
		}
	}

	present := opts.Presentation
	if present.Classes == nil {
		present.Classes = DefaultClasses
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := &Renderer{
		engine:      opts.Engine,
		tags:        tags,
		present:     present,
		headingIDs:  opts.HeadingIDs,
		highlighter: opts.Highlighter,
		log:         log,
	}

	switch opts.Engine {
	case "", EngineRegex:
		r.engine = EngineRegex
	case EngineGoldmark:
		r.goldmark = newGoldmarkEngine(opts.Highlighter)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, opts.Engine)
	}
	return r, nil
}

// Render converts source to HTML and lists the math spans it contains.
// It never fails: unrecognized syntax is kept as escaped text.
func (r *Renderer) Render(source string) Output {
	if r.goldmark != nil {
		out, err := r.renderGoldmark(source)
		if err == nil {
			return out
		}
		r.log.Warn("goldmark conversion failed, using regex engine", zap.Error(err))
	}
	return r.renderRegex(source)
}

func (r *Renderer) renderRegex(source string) Output {
	text := Normalize(source)
	a := newArena(text)

	text = extractCodeFences(text, a)
	text = extractInlineCode(text, a)
	text = r.tags.protect(text, a)
	text = EscapeHTML(text)
	text = extractMath(text, a)
	text = transformBlocks(text)
	text = wrapParagraphs(text, a)

	return r.finish(text, a)
}

// finish restores fragments and applies presentation. Generated fragments
// are restored before class injection and raw tags after it, so raw tags are
// emitted exactly as written.
func (r *Renderer) finish(text string, a *arena) Output {
	spans := r.mathSpans(a)

	text, droppedGenerated := a.restore(text, fragmentKind.generated, r.renderFragment)
	if r.headingIDs {
		text = assignHeadingIDs(text, a)
	}
	text = r.present.apply(text)
	text, droppedRaw := a.restore(text, func(fragmentKind) bool { return true }, r.renderFragment)

	if dropped := droppedGenerated + droppedRaw; dropped > 0 {
		r.log.Warn("dropped unresolved placeholder tokens", zap.Int("count", dropped))
	}
	if n := a.unconsumed(); n > 0 {
		r.log.Debug("fragments not present in output", zap.Int("count", n))
	}

	return Output{HTML: text, Math: spans}
}

// mathSpans lists math fragments in id order with their LaTeX source.
func (r *Renderer) mathSpans(a *arena) []MathSpan {
	var spans []MathSpan
	for i := range a.fragments {
		f := &a.fragments[i]
		if f.kind != kindMathBlock && f.kind != kindMathInline {
			continue
		}
		spans = append(spans, MathSpan{
			ID:          f.mathID,
			LaTeX:       html.UnescapeString(a.expand(f.text)),
			DisplayMode: f.kind == kindMathBlock,
		})
	}
	return spans
}

// renderFragment produces the HTML for a protected fragment.
func (r *Renderer) renderFragment(f *fragment) string {
	switch f.kind {
	case kindCodeBlock:
		return r.renderCodeBlock(f.lang, f.text)
	case kindInlineCode:
		return "<code>" + EscapeHTML(f.text) + "</code>"
	case kindMathBlock:
		return fmt.Sprintf(`<div class="math-block" data-math-id="%d">%s</div>`, f.mathID, f.text)
	case kindMathInline:
		return fmt.Sprintf(`<span class="math-inline" data-math-id="%d">%s</span>`, f.mathID, f.text)
	default:
		return f.text
	}
}

func (r *Renderer) renderCodeBlock(lang, code string) string {
	class := "language-text"
	if lang != "" {
		class = "language-" + lang
	}
	body := EscapeHTML(code)
	if r.highlighter != nil {
		if highlighted, ok := r.highlighter.Highlight(lang, code); ok {
			body = highlighted
			class += " chroma"
		} else {
			r.log.Debug("highlighting failed, keeping plain code", zap.String("lang", lang))
		}
	}
	return fmt.Sprintf(`<pre><code class="%s">%s</code></pre>`, class, body)
}
