package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for escape normalization.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Literal "\r\n" with any number of repeated backslashes
	escapedCRLF = regexp.MustCompile(`\\+r\\+n`)

	// Literal "\r", "\n" or "\t" followed by the rest of the word, so LaTeX
	// commands such as \right or \theta can be told apart from escapes.
	escapedControl = regexp.MustCompile(`\\+([rnt])([A-Za-z]*)`)

	// Backslash directly before a real newline
	escapedNewline = regexp.MustCompile(`\\+\n`)

	// Escaped quotes left over from JSON string storage
	escapedQuote = regexp.MustCompile(`\\+(["'])`)

	// Dangling backslashes at end of line or input
	danglingBackslash = regexp.MustCompile(`\\+(\n|$)`)

	// Three or more blank lines
	excessBlankLines = regexp.MustCompile(`\n(?:[ \t]*\n){3,}`)

	// Entities that were HTML-encoded twice
	doubleEncodedEntity = regexp.MustCompile(`&amp;(lt|gt|quot|#39|amp);`)
)

// entityDecoder decodes the entities produced by an upstream escaping pass.
var entityDecoder = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
)

// Normalize decodes escape artifacts left by JSON (de)serialization of the
// source text. It never fails; an empty input yields an empty output.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := normalizeLineEndings(raw)
	s = escapedCRLF.ReplaceAllString(s, "\n")
	s = decodeControlEscapes(s)
	s = escapedNewline.ReplaceAllString(s, "\n")
	s = escapedQuote.ReplaceAllString(s, "$1")
	s = danglingBackslash.ReplaceAllString(s, "$1")
	s = compressBlankLines(s)
	s = decodeEntities(s)
	return s
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines collapses three or more blank lines to a single one.
func compressBlankLines(content string) string {
	return excessBlankLines.ReplaceAllString(content, "\n\n")
}

// decodeControlEscapes turns literal \n, \r and \t into their characters,
// leaving LaTeX commands that happen to start with those letters alone.
func decodeControlEscapes(s string) string {
	return escapedControl.ReplaceAllStringFunc(s, func(match string) string {
		m := escapedControl.FindStringSubmatch(match)
		letter, rest := m[1], m[2]
		if latexControlWords[letter+rest] {
			return match
		}
		if letter == "t" {
			return "\t" + rest
		}
		return "\n" + rest
	})
}

// decodeEntities unwraps doubly encoded entities, then decodes the basic set
// so raw HTML escaped by a previous pass is treated as markup.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = doubleEncodedEntity.ReplaceAllString(s, "&$1;")
	return entityDecoder.Replace(s)
}
