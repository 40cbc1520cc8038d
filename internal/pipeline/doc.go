// Package pipeline implements the Markdown-to-HTML conversion pipeline used to
// display generated textbook content.
//
// The pipeline is a chain of string rewrites over a single document:
//   - escape normalization (literal \n, \t, doubly encoded entities)
//   - fenced code, inline code and raw HTML tag protection via placeholder tokens
//   - HTML escaping of the remaining text
//   - block and inline Markdown passes, including $...$ and \[...\] math
//   - paragraph wrapping
//   - token restoration and presentation class injection
//
// Math elements are emitted with the math-inline and math-block classes and a
// data-math-id attribute. Typesetting them is left to the caller, who receives
// the list of spans next to the HTML and mounts rendered markup with Mount.
//
// A goldmark-based engine is also provided. It shares normalization, math
// extraction, raw tag protection and class injection with the regex engine but
// leaves block parsing to goldmark.
package pipeline
