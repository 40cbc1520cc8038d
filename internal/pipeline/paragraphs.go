package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Blank line, possibly holding only spaces or tabs
	blankLineSplit = regexp.MustCompile(`\n[ \t]*\n\s*`)

	// Leading tag name of a block
	leadingTag = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9]*)[\s/>]`)
)

// wrapParagraphs wraps every block that does not already start with a block
// element in <p>, turning single newlines into <br>. Tokens of block
// fragments count as block elements.
func wrapParagraphs(text string, a *arena) string {
	blocks := blankLineSplit.Split(text, -1)
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if startsWithBlock(block, a) {
			out = append(out, block)
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(block, "\n", "<br>")+"</p>")
	}
	return strings.Join(out, "\n")
}

// startsWithBlock reports whether block begins with a block-level element.
// Inline code and inline math restore to <code> and <span>, which the wrapper
// leaves alone like the raw tags.
func startsWithBlock(block string, a *arena) bool {
	if m := leadingTag.FindStringSubmatch(block); m != nil {
		return blockTags[strings.ToLower(m[1])]
	}
	f, ok := a.leadingFragment(block)
	if !ok {
		return false
	}
	switch f.kind {
	case kindCodeBlock, kindMathBlock, kindInlineCode, kindMathInline:
		return true
	case kindRawTag:
		return blockTags[f.tag]
	default:
		return false
	}
}
