package typeset

import (
	"errors"
	"fmt"
	"html"
)

// Sentinel errors for rendering.
var (
	ErrParse           = errors.New("LaTeX parse failed")
	ErrUnknownCommand  = errors.New("unknown LaTeX command")
	ErrEmptyExpression = errors.New("empty LaTeX expression")
)

// Options controls a single render call.
type Options struct {
	// DisplayMode renders the expression as a centered block.
	DisplayMode bool

	// ThrowOnError returns parse failures as errors. When false the renderer
	// returns ErrorMarkup instead and a nil error.
	ThrowOnError bool
}

// Renderer typesets one LaTeX expression.
type Renderer interface {
	Render(latex string, opts Options) (string, error)
}

// Func adapts a function to the Renderer interface.
type Func func(latex string, opts Options) (string, error)

func (f Func) Render(latex string, opts Options) (string, error) {
	return f(latex, opts)
}

// ErrorMarkup shows the source of an expression that could not be rendered.
func ErrorMarkup(latex string, err error) string {
	title := ""
	if err != nil {
		title = fmt.Sprintf(` title="%s"`, html.EscapeString(err.Error()))
	}
	return fmt.Sprintf(`<span class="math-error"%s>%s</span>`, title, html.EscapeString(latex))
}

// fail applies the ThrowOnError policy to err.
func fail(latex string, opts Options, err error) (string, error) {
	if opts.ThrowOnError {
		return "", err
	}
	return ErrorMarkup(latex, err), nil
}

// Compile-time interface check.
var _ Renderer = Func(nil)
