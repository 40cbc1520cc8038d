package bookfmt

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/raj05122001/textbook-machine-sub001/internal/pipeline"
)

// defaultRenderer backs the package-level RenderToHTML.
var defaultRenderer = sync.OnceValue(func() *pipeline.Renderer {
	r, err := pipeline.NewRenderer(pipeline.Options{})
	if err != nil {
		panic("bookfmt: default renderer: " + err.Error())
	}
	return r
})

// RenderToHTML converts source with the default options. See
// Converter.RenderToHTML.
func RenderToHTML(source string) Result {
	out := defaultRenderer().Render(source)
	return Result{HTML: out.HTML, Math: out.Math}
}

// Typeset renders each span with r. LaTeX is normalized first and rendered
// with ThrowOnError unset. A span whose render fails or panics keeps its
// escaped LaTeX as markup and records the failure in Err; Typeset itself
// only fails when ctx is done, returning the spans finished so far.
func Typeset(ctx context.Context, r MathRenderer, spans []MathSpan) ([]TypesetSpan, error) {
	return typesetSpans(ctx, r, spans, zap.NewNop())
}

// Mount replaces the content of each math element in htmlContent with the
// markup of the TypesetSpan carrying its id. Mounting is idempotent.
func Mount(htmlContent string, spans []TypesetSpan) (string, error) {
	if len(spans) == 0 {
		return htmlContent, nil
	}
	markup := make(map[int]string, len(spans))
	for _, s := range spans {
		markup[s.ID] = s.Markup
	}
	return pipeline.Mount(htmlContent, markup)
}

func typesetSpans(ctx context.Context, r MathRenderer, spans []MathSpan, log *zap.Logger) ([]TypesetSpan, error) {
	if r == nil || len(spans) == 0 {
		return nil, nil
	}

	out := make([]TypesetSpan, 0, len(spans))
	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		ts := typesetSpan(r, span)
		if ts.Err != nil {
			log.Debug("typesetting failed, keeping LaTeX source",
				zap.Int("id", span.ID), zap.String("latex", span.LaTeX), zap.Error(ts.Err))
		}
		out = append(out, ts)
	}
	return out, nil
}

func typesetSpan(r MathRenderer, span MathSpan) (ts TypesetSpan) {
	ts.ID = span.ID
	defer func() {
		if p := recover(); p != nil {
			ts.Markup = pipeline.EscapeHTML(span.LaTeX)
			ts.Err = fmt.Errorf("%w: math renderer panicked: %v", ErrInternal, p)
		}
	}()

	markup, err := r.Render(pipeline.NormalizeLaTeX(span.LaTeX), RenderOptions{DisplayMode: span.DisplayMode})
	if err != nil {
		ts.Markup = pipeline.EscapeHTML(span.LaTeX)
		ts.Err = err
		return ts
	}
	ts.Markup = markup
	return ts
}
