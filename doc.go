// Package bookfmt converts textbook chapters written in Markdown, with raw
// HTML and LaTeX math, into styled HTML.
//
// # Quick Start
//
// Render a chapter, typeset its math, and mount the result:
//
//	conv, err := bookfmt.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, bookfmt.Input{
//	    Markdown: "# Limits\n\nFor $x \\to 0$, $$\\frac{\\sin x}{x} \\to 1$$",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// # Two Phases
//
// Rendering and typesetting are separate steps so a caller can typeset math
// wherever suits it, for example in a browser:
//
//  1. RenderToHTML produces the HTML fragment and a MathSpan per expression.
//     Math elements carry the math-inline or math-block class and a
//     data-math-id attribute, and hold their escaped LaTeX.
//  2. Typeset renders the spans with a MathRenderer. Failures never abort:
//     the span keeps its escaped LaTeX and TypesetSpan.Err says why.
//  3. Mount puts the typeset markup into the matching elements.
//
// Convert runs all three and can then wrap the fragment in a standalone page
// or export it to PDF.
//
// # Conversion Pipeline
//
// RenderToHTML applies these stages to the source:
//
//  1. Escape normalization (literal \n, \t, entities, CRLF)
//  2. Protection of code, raw HTML tags, and math behind placeholder tokens
//  3. HTML escaping of the remaining text
//  4. Block and inline transforms (headings, lists, tables, emphasis, links)
//  5. Paragraph wrapping
//  6. Token restoration and presentation classes
//
// WithEngine(EngineGoldmark) swaps stages 3 to 5 for the goldmark parser.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := bookfmt.NewConverter(
//	    bookfmt.WithImageBaseURL("https://cdn.example.com/book/"),
//	    bookfmt.WithHighlighting("github"),
//	    bookfmt.WithMathRenderer(bookfmt.NewUnicodeRenderer()),
//	    bookfmt.WithTypesetCache(10*time.Minute),
//	    bookfmt.WithTOC(bookfmt.TOC{Title: "Contents"}),
//	)
//
// # Parallel Processing
//
// For batch conversion with PDF export, use ConverterPool so each worker
// owns a browser:
//
//	pool := bookfmt.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, bookfmt.Input{Markdown: src, PDF: true})
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package bookfmt
