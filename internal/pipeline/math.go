package pipeline

import (
	"regexp"
	"strings"
)

var (
	// $$ ... $$ across lines
	dollarBlockPattern = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)

	// \[ ... \] across lines
	bracketBlockPattern = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)

	// $ ... $ on one line, no $ inside, no space right inside the delimiters
	dollarInlinePattern = regexp.MustCompile(`\$([^$\s](?:[^$\n]*[^$\s])?)\$`)

	// \( ... \)
	parenInlinePattern = regexp.MustCompile(`(?s)\\\((.+?)\\\)`)
)

// MathSpan describes one math element awaiting typesetting.
type MathSpan struct {
	ID          int
	LaTeX       string
	DisplayMode bool
}

// extractMath moves display math, then inline math, into the arena. Display
// math goes first so $$ is never read as two inline delimiters.
func extractMath(text string, a *arena) string {
	block := func(match string, inner string) string {
		return "\n\n" + a.add(fragment{kind: kindMathBlock, text: strings.TrimSpace(inner)}) + "\n\n"
	}
	text = dollarBlockPattern.ReplaceAllStringFunc(text, func(match string) string {
		return block(match, dollarBlockPattern.FindStringSubmatch(match)[1])
	})
	text = bracketBlockPattern.ReplaceAllStringFunc(text, func(match string) string {
		return block(match, bracketBlockPattern.FindStringSubmatch(match)[1])
	})

	text = extractDollarInline(text, a)
	return parenInlinePattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := strings.TrimSpace(parenInlinePattern.FindStringSubmatch(match)[1])
		return a.add(fragment{kind: kindMathInline, text: inner})
	})
}

// extractDollarInline handles single-dollar math. A closing $ followed by a
// digit ("$5 and $10") or an opening \$ is treated as a literal dollar sign.
func extractDollarInline(text string, a *arena) string {
	if !strings.Contains(text, "$") {
		return text
	}

	var b strings.Builder
	last, pos := 0, 0
	for pos < len(text) {
		loc := dollarInlinePattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if (end < len(text) && isASCIIDigit(text[end])) || (start > 0 && text[start-1] == '\\') {
			pos = start + 1
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(a.add(fragment{kind: kindMathInline, text: text[pos+loc[2] : pos+loc[3]]}))
		last, pos = end, end
	}
	b.WriteString(text[last:])
	return b.String()
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
