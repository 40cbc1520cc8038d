package pipeline

import (
	"regexp"
	"strings"
)

// LaTeX backslash clean-up applied right before typesetting. Escape decoding
// upstream can leave commands with two to four backslashes.
var (
	// Three or more backslashes not followed by a letter: a row break "\\"
	latexRowBreak = regexp.MustCompile(`\\{3,}([^A-Za-z\\]|$)`)

	// Any run of backslashes before a command name
	latexCommandRun = regexp.MustCompile(`\\+([A-Za-z])`)

	// Any run of backslashes before a spacing command
	latexSpacingRun = regexp.MustCompile(`\\+([,;:!])`)
)

// NormalizeLaTeX collapses repeated backslashes in a LaTeX expression so that
// "\\\\int_0^1" becomes "\int_0^1" while matrix row breaks "\\" survive.
func NormalizeLaTeX(latex string) string {
	s := strings.TrimSpace(latex)
	if !strings.Contains(s, `\`) {
		return s
	}
	s = latexRowBreak.ReplaceAllString(s, `\\${1}`)
	s = latexCommandRun.ReplaceAllString(s, `\${1}`)
	s = latexSpacingRun.ReplaceAllString(s, `\${1}`)
	if strings.HasSuffix(s, `\`) && !strings.HasSuffix(s, `\\`) {
		s = strings.TrimSuffix(s, `\`)
	}
	return s
}
