package typeset

import (
	"fmt"
	"strings"

	"github.com/wyatt915/treeblood"
)

// MathML renders LaTeX to presentation MathML.
type MathML struct {
	macros map[string]string
}

// NewMathML creates a MathML renderer. macros maps command names to their
// LaTeX expansion, for example {`\R`: `\mathbb{R}`}; it may be nil.
func NewMathML(macros map[string]string) *MathML {
	return &MathML{macros: macros}
}

func (m *MathML) Render(latex string, opts Options) (string, error) {
	if strings.TrimSpace(latex) == "" {
		return fail(latex, opts, ErrEmptyExpression)
	}

	mml, err := treeblood.TexToMML(latex, m.macros, opts.DisplayMode, false)
	if err != nil {
		return fail(latex, opts, fmt.Errorf("%w: %v", ErrParse, err))
	}
	return mml, nil
}

// Compile-time interface check.
var _ Renderer = (*MathML)(nil)
