package typeset

import (
	"errors"
	"testing"
)

func TestToText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "x + y", expected: "x + y"},
		{name: "greek", input: `\alpha + \beta`, expected: "α + β"},
		{name: "scripts", input: "x^2 + y_1", expected: "x² + y₁"},
		{name: "grouped superscript", input: "x^{10}", expected: "x¹⁰"},
		{name: "superscript fallback", input: `e^{i\pi}`, expected: "e^(iπ)"},
		{name: "vulgar fraction", input: `\frac{1}{2}`, expected: "½"},
		{name: "general fraction", input: `\frac{a+b}{c}`, expected: "(a+b)/c"},
		{name: "square root", input: `\sqrt{x}`, expected: "√x"},
		{name: "cube root", input: `\sqrt[3]{8}`, expected: "∛8"},
		{name: "blackboard", input: `x \in \mathbb{R}`, expected: "x ∈ ℝ"},
		{name: "negation", input: `a \not= b`, expected: "a ≠ b"},
		{name: "text command", input: `\text{if } x > 0`, expected: "if x > 0"},
		{name: "left right", input: `\left( x \right)`, expected: "( x )"},
		{name: "invisible delimiter", input: `\left. x \right|`, expected: "x |"},
		{name: "integral", input: `\int_0^1 x\,dx`, expected: "∫₀¹ x dx"},
		{name: "matrix", input: `\begin{pmatrix} a & b \\ c & d \end{pmatrix}`, expected: "(a b; c d)"},
		{name: "unknown command kept", input: `\foo x`, expected: `\foo x`},
		{name: "accent", input: `\vec{v}`, expected: "v\u20d7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ToText(tt.input)
			if got != tt.expected {
				t.Errorf("ToText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUnicode_Render(t *testing.T) {
	t.Parallel()

	u := NewUnicode()

	t.Run("escapes output", func(t *testing.T) {
		t.Parallel()

		got, err := u.Render("x<y", Options{})
		if err != nil {
			t.Fatal(err)
		}
		if want := `<span class="math-text">x&lt;y</span>`; got != want {
			t.Errorf("Render = %q, want %q", got, want)
		}
	})

	t.Run("strict unknown command", func(t *testing.T) {
		t.Parallel()

		_, err := u.Render(`\foo`, Options{ThrowOnError: true})
		if !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("error = %v, want ErrUnknownCommand", err)
		}
	})

	t.Run("strict unbalanced braces", func(t *testing.T) {
		t.Parallel()

		_, err := u.Render(`\frac{1}{2`, Options{ThrowOnError: true})
		if !errors.Is(err, ErrParse) {
			t.Errorf("error = %v, want ErrParse", err)
		}
	})

	t.Run("lenient error markup", func(t *testing.T) {
		t.Parallel()

		got, err := u.Render(" ", Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != `<span class="math-error" title="empty LaTeX expression"> </span>` {
			t.Errorf("Render = %q", got)
		}
	})

	t.Run("deep nesting is rejected", func(t *testing.T) {
		t.Parallel()

		deep := ""
		for i := 0; i < maxNesting+5; i++ {
			deep += "{"
		}
		got, err := u.Render(deep, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == "" {
			t.Error("expected error markup")
		}
	})
}
