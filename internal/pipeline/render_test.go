package pipeline

import (
	"errors"
	"strings"
	"testing"
)

// plainRenderer renders without presentation classes so expected output stays
// readable.
func plainRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	if opts.Presentation.Classes == nil {
		opts.Presentation.Classes = map[string]string{}
	}
	r, err := NewRenderer(opts)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRender_Regex(t *testing.T) {
	t.Parallel()

	r := plainRenderer(t, Options{})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "heading and paragraph",
			input:    "# Title\n\nHello **world**",
			expected: "<h1>Title</h1>\n<p>Hello <strong>world</strong></p>",
		},
		{
			name:     "closed ATX heading",
			input:    "### Part ###",
			expected: "<h3>Part</h3>",
		},
		{
			name:     "setext h1",
			input:    "Title\n=====",
			expected: "<h1>Title</h1>",
		},
		{
			name:     "setext h2 wins over rule",
			input:    "Title\n---",
			expected: "<h2>Title</h2>",
		},
		{
			name:     "thematic break",
			input:    "a\n\n---\n\nb",
			expected: "<p>a</p>\n<hr>\n<p>b</p>",
		},
		{
			name:     "line breaks inside paragraph",
			input:    "one\ntwo",
			expected: "<p>one<br>two</p>",
		},
		{
			name:     "escaped newline from JSON",
			input:    `Line1\nLine2`,
			expected: "<p>Line1<br>Line2</p>",
		},
		{
			name:     "script is escaped",
			input:    "<script>alert(1)</script>",
			expected: "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>",
		},
		{
			name:     "whitelisted tag round-trips",
			input:    `<div class="note">Hi</div>`,
			expected: `<div class="note">Hi</div>`,
		},
		{
			name:     "emphasis and snake case",
			input:    "*it* and snake_case_name",
			expected: "<p><em>it</em> and snake_case_name</p>",
		},
		{
			name:     "underscore emphasis",
			input:    "an _aside_ here",
			expected: "<p>an <em>aside</em> here</p>",
		},
		{
			name:     "strikethrough",
			input:    "~~old~~",
			expected: "<p><del>old</del></p>",
		},
		{
			name:     "blockquote",
			input:    "> quoted",
			expected: "<blockquote>quoted</blockquote>",
		},
		{
			name:     "unordered list",
			input:    "- one\n- two",
			expected: "<ul><li>one</li><li>two</li></ul>",
		},
		{
			name:     "ordered list keeps start",
			input:    "3. a\n4. b",
			expected: `<ol start="3"><li>a</li><li>b</li></ol>`,
		},
		{
			name:     "absolute link",
			input:    "[Go](https://go.dev)",
			expected: `<p><a href="https://go.dev" target="_blank" rel="noopener noreferrer">Go</a></p>`,
		},
		{
			name:     "relative link stays text",
			input:    "[x](/local)",
			expected: "<p>[x](/local)</p>",
		},
		{
			name:     "table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			expected: "<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
		},
		{
			name:     "fenced code is escaped",
			input:    "```go\nfmt.Println(\"<hi>\")\n```",
			expected: `<pre><code class="language-go">fmt.Println("&lt;hi&gt;")</code></pre>`,
		},
		{
			name:     "fence without language",
			input:    "```\nx\n```",
			expected: `<pre><code class="language-text">x</code></pre>`,
		},
		{
			name:     "inline code hides markdown",
			input:    "Use `a*b*c` here",
			expected: "<p>Use <code>a*b*c</code> here</p>",
		},
		{
			name:     "inline code hides math",
			input:    "`$x$`",
			expected: "<code>$x$</code>",
		},
		{
			name:     "inline math",
			input:    `Euler: $e^{i\pi}+1=0$`,
			expected: `<p>Euler: <span class="math-inline" data-math-id="0">e^{i\pi}+1=0</span></p>`,
		},
		{
			name:     "display math",
			input:    "$$\n\\int_0^1 x\\,dx\n$$",
			expected: `<div class="math-block" data-math-id="0">\int_0^1 x\,dx</div>`,
		},
		{
			name:     "bracket display math",
			input:    `\[x^2\]`,
			expected: `<div class="math-block" data-math-id="0">x^2</div>`,
		},
		{
			name:     "paren inline math",
			input:    `see \(a_1\) now`,
			expected: `<p>see <span class="math-inline" data-math-id="0">a_1</span> now</p>`,
		},
		{
			name:     "prices are not math",
			input:    "It costs $5 and $10 today",
			expected: "<p>It costs $5 and $10 today</p>",
		},
		{
			name:     "leading inline math is not wrapped",
			input:    "$x$ is a variable",
			expected: `<span class="math-inline" data-math-id="0">x</span> is a variable`,
		},
		{
			name:     "leading inline code is not wrapped",
			input:    "`code` first",
			expected: "<code>code</code> first",
		},
		{
			name:     "fenced code is left untouched",
			input:    "```\n# h\n*a* _b_ | c |\n$x$ <span>\n---\n```",
			expected: "<pre><code class=\"language-text\"># h\n*a* _b_ | c |\n$x$ &lt;span&gt;\n---</code></pre>",
		},
		{
			name:     "overlong ordered list number starts at one",
			input:    "99999999999999999999. item",
			expected: `<ol start="1"><li>item</li></ol>`,
		},
		{
			name:     "math with text command",
			input:    `Color: $\textcolor{red}{x}$`,
			expected: `<p>Color: <span class="math-inline" data-math-id="0">\textcolor{red}{x}</span></p>`,
		},
		{
			name:     "math with negated quantifier",
			input:    `so $\nexists x$ here`,
			expected: `<p>so <span class="math-inline" data-math-id="0">\nexists x</span> here</p>`,
		},
		{
			name:     "display math with nolimits",
			input:    `$$\sum\nolimits_i x_i$$`,
			expected: `<div class="math-block" data-math-id="0">\sum\nolimits_i x_i</div>`,
		},
		{
			name:     "math inside raw span",
			input:    "<span>$x$</span>",
			expected: `<span><span class="math-inline" data-math-id="0">x</span></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.Render(tt.input).HTML
			if got != tt.expected {
				t.Errorf("Render(%q)\n got: %q\nwant: %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRender_MathSpans(t *testing.T) {
	t.Parallel()

	r := plainRenderer(t, Options{})
	out := r.Render("Inline $a<b$ then\n\n$$\nx^2\n$$")

	if len(out.Math) != 2 {
		t.Fatalf("got %d spans, want 2", len(out.Math))
	}
	// Display math is extracted first and numbered first.
	if out.Math[0] != (MathSpan{ID: 0, LaTeX: "x^2", DisplayMode: true}) {
		t.Errorf("span 0 = %+v", out.Math[0])
	}
	if out.Math[1] != (MathSpan{ID: 1, LaTeX: "a<b", DisplayMode: false}) {
		t.Errorf("span 1 = %+v", out.Math[1])
	}
	if !strings.Contains(out.HTML, `data-math-id="1">a&lt;b</span>`) {
		t.Errorf("inline math not escaped in HTML: %q", out.HTML)
	}
}

func TestRender_NoPlaceholderLeaks(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(Options{})
	if err != nil {
		t.Fatal(err)
	}
	input := "# T\n\n<div>`code` $x$ **b**</div>\n\n```\n<p>\n```\n\n$$y$$"
	out := r.Render(input).HTML
	for _, c := range out {
		if c >= markerFirst && c <= markerLast {
			t.Fatalf("placeholder rune %U left in output: %q", c, out)
		}
	}
}

func TestRender_SourceMarkerCollision(t *testing.T) {
	t.Parallel()

	r := plainRenderer(t, Options{})
	fake := string(rune(markerFirst)) + "C0" + string(rune(markerFirst))
	out := r.Render("text " + fake + " and `code`").HTML

	if !strings.Contains(out, fake) {
		t.Errorf("user text resembling a token was altered: %q", out)
	}
	if !strings.Contains(out, "<code>code</code>") {
		t.Errorf("code span missing: %q", out)
	}
}

func TestRender_AllowedRawTags(t *testing.T) {
	t.Parallel()

	r := plainRenderer(t, Options{AllowedRawTags: []string{}})
	got := r.Render("<div>x</div>").HTML
	want := "<p>&lt;div&gt;x&lt;/div&gt;</p>"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_DefaultClasses(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(Options{})
	if err != nil {
		t.Fatal(err)
	}
	out := r.Render("# Title\n\ntext\n\n<p>raw</p>").HTML

	if !strings.Contains(out, `<h1 class="`+DefaultClasses["h1"]+`">Title</h1>`) {
		t.Errorf("heading class missing: %q", out)
	}
	if !strings.Contains(out, `<p class="`+DefaultClasses["p"]+`">text</p>`) {
		t.Errorf("paragraph class missing: %q", out)
	}
	if !strings.Contains(out, "<p>raw</p>") {
		t.Errorf("raw tag was modified: %q", out)
	}
}

func TestRender_Images(t *testing.T) {
	t.Parallel()

	r := plainRenderer(t, Options{Presentation: Presentation{
		ImageBaseURL:   "https://cdn.example.com/",
		MaxImageHeight: "300px",
	}})
	got := r.Render("![Alt](img/a.png)").HTML
	want := `<img alt="Alt" src="https://cdn.example.com/img/a.png"` +
		` style="max-width:100%;max-height:300px;height:auto;display:block;margin:0 auto;"` +
		` onerror="this.style.display='none'" />`
	if got != want {
		t.Errorf("Render\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_InlineMarkupOutsideTags(t *testing.T) {
	t.Parallel()

	r := plainRenderer(t, Options{})

	tests := []struct {
		name    string
		input   string
		want    string
		notWant string
	}{
		{"bold in image alt", "![**bold** alt](x.png)", `alt="**bold** alt"`, "<strong>"},
		{"strike in image alt", "![~~old~~](x.png)", `alt="~~old~~"`, "<del>"},
		{"bold around a link", "**[Go](https://go.dev)**", `<strong><a href="https://go.dev"`, ""},
		{"bold after an image", "![a](x.png) and **b**", "and <strong>b</strong>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := r.Render(tt.input).HTML
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("Render(%q) = %q, must not contain %q", tt.input, got, tt.notWant)
			}
		})
	}
}

func TestRender_HeadingIDs(t *testing.T) {
	t.Parallel()

	r := plainRenderer(t, Options{HeadingIDs: true})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "duplicate titles",
			input:    "# Hello World\n\n## Hello World",
			expected: "<h1 id=\"hello-world\">Hello World</h1>\n<h2 id=\"hello-world-1\">Hello World</h2>",
		},
		{
			name:     "raw tag inside heading",
			input:    "# Intro <em>fast</em> path",
			expected: `<h1 id="intro-fast-path">Intro <em>fast</em> path</h1>`,
		},
		{
			name:     "inline code inside heading",
			input:    "## The `main` func",
			expected: `<h2 id="the-main-func">The <code>main</code> func</h2>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Render(tt.input).HTML; got != tt.expected {
				t.Errorf("Render(%q)\n got: %q\nwant: %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRender_Highlighting(t *testing.T) {
	t.Parallel()

	h, err := NewHighlighter("monokai")
	if err != nil {
		t.Fatal(err)
	}
	r := plainRenderer(t, Options{Highlighter: h})
	got := r.Render("```go\npackage main\n```").HTML

	if !strings.Contains(got, `<code class="language-go chroma">`) {
		t.Errorf("highlighted class missing: %q", got)
	}
	if !strings.Contains(got, "package") {
		t.Errorf("code text missing: %q", got)
	}
}

func TestNewRenderer_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{
			name:    "invalid raw tag",
			opts:    Options{AllowedRawTags: []string{"<div>"}},
			wantErr: ErrInvalidRawTag,
		},
		{
			name:    "invalid image width",
			opts:    Options{Presentation: Presentation{MaxImageWidth: "big"}},
			wantErr: ErrInvalidImageSize,
		},
		{
			name:    "unknown engine",
			opts:    Options{Engine: "pandoc"},
			wantErr: ErrUnknownEngine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewRenderer(tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
