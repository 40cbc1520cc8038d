// Package typeset turns LaTeX expressions into HTML markup.
//
// Two renderers are provided: MathML, which produces <math> elements through
// treeblood and needs no script in the browser, and Unicode, which produces
// plain text for contexts where MathML is not displayed. Cached wraps any
// Renderer with a TTL cache keyed by expression and display mode.
package typeset
