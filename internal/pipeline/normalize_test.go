package pipeline

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "CRLF and CR line endings",
			input:    "a\r\nb\rc",
			expected: "a\nb\nc",
		},
		{
			name:     "literal newline escape",
			input:    `Line1\nLine2`,
			expected: "Line1\nLine2",
		},
		{
			name:     "literal CRLF escape",
			input:    `a\r\nb`,
			expected: "a\nb",
		},
		{
			name:     "doubled backslash newline escape",
			input:    `a\\nb`,
			expected: "a\nb",
		},
		{
			name:     "literal tab escape",
			input:    `a\tb`,
			expected: "a\tb",
		},
		{
			name:     "LaTeX commands starting with n r t survive",
			input:    `$\theta \neq \rho \times \nabla \text{x}$`,
			expected: `$\theta \neq \rho \times \nabla \text{x}$`,
		},
		{
			name:     "other LaTeX commands untouched",
			input:    `$\frac{1}{2} + \alpha$`,
			expected: `$\frac{1}{2} + \alpha$`,
		},
		{
			name:     "escaped quotes",
			input:    `say \"hi\" and \'bye\'`,
			expected: `say "hi" and 'bye'`,
		},
		{
			name:     "backslash before real newline",
			input:    "a\\\nb",
			expected: "a\nb",
		},
		{
			name:     "dangling backslash at end",
			input:    `end\`,
			expected: "end",
		},
		{
			name:     "three blank lines collapse",
			input:    "a\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "single blank line kept",
			input:    "a\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "double encoded entities",
			input:    "&amp;lt;div&amp;gt;",
			expected: "<div>",
		},
		{
			name:     "basic entities decoded",
			input:    "&lt;b&gt; &quot;q&quot; &#39;s&#39; &amp;",
			expected: `<b> "q" 's' &`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"plain text",
		"# Title\n\nBody with $x^2$",
		"a\n\nb\n\nc",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not stable for %q: %q then %q", in, once, twice)
		}
	}
}

func TestDecodeControlEscapes_LaTeXCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"textcolor", `\textcolor{red}{x}`},
		{"texttt", `\texttt{code}`},
		{"textsf", `\textsf{label}`},
		{"tbinom", `\tbinom{n}{k}`},
		{"tag", `E = mc^2 \tag{1}`},
		{"notag", `a = b \notag`},
		{"nexists", `\nexists x`},
		{"nolimits", `\sum\nolimits_i x_i`},
		{"newcommand", `\newcommand{\R}{\mathbb{R}}`},
		{"renewcommand", `\renewcommand{\vec}{\mathbf}`},
		{"triangleright", `a \triangleright b`},
		{"tiny", `{\tiny x}`},
		{"nleftarrow", `a \nleftarrow b`},
		{"rightharpoonup", `\rightharpoonup`},
		{"thinspace", `a\thinspace b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := decodeControlEscapes(tt.input); got != tt.input {
				t.Errorf("decodeControlEscapes(%q) = %q, want it unchanged", tt.input, got)
			}
		})
	}
}

func TestDecodeControlEscapes_Escapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{`a\nb`, "a\nb"},
		{`a\tb`, "a\tb"},
		{`\nText`, "\nText"},
		{`\tname`, "\tname"},
		{`x\rtotal`, "x\ntotal"},
	}

	for _, tt := range tests {
		if got := decodeControlEscapes(tt.input); got != tt.expected {
			t.Errorf("decodeControlEscapes(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
