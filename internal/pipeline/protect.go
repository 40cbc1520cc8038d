package pipeline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultRawTags is the whitelist of HTML elements kept as markup when they
// appear in the source. Anything else is escaped and shown as text.
var DefaultRawTags = []string{
	"div", "span", "p", "h1", "h2", "h3", "h4", "h5", "h6",
	"table", "thead", "tbody", "tr", "th", "td", "img", "a",
	"em", "strong", "blockquote", "ul", "ol", "li", "hr", "br", "section",
}

// blockTags are elements that start a block of their own. A paragraph that
// begins with one of these, raw or generated, is not wrapped in <p>.
var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "table": true, "thead": true, "tbody": true,
	"tr": true, "th": true, "td": true, "blockquote": true, "hr": true, "div": true,
	"span": true, "pre": true, "img": true, "p": true, "code": true, "section": true,
}

var (
	// Fenced code block with an optional language right after the fence
	codeFencePattern = regexp.MustCompile("(?s)```([\\w+#.-]*)[ \\t]*\\n?(.*?)```")

	// Inline code span on a single line
	inlineCodePattern = regexp.MustCompile("`([^`\\n]+)`")

	// Valid element names for the raw tag whitelist
	tagNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// htmlEscaper escapes the three characters that can start markup.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML replaces &, < and > with entities. Quotes are left alone.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// extractCodeFences moves fenced code blocks into the arena. Each block is
// replaced by a token standing on its own paragraph.
func extractCodeFences(text string, a *arena) string {
	return codeFencePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := codeFencePattern.FindStringSubmatch(match)
		code := strings.TrimSuffix(m[2], "\n")
		return "\n\n" + a.add(fragment{kind: kindCodeBlock, lang: m[1], text: code}) + "\n\n"
	})
}

// extractInlineCode moves `code` spans into the arena so later passes never
// see their content.
func extractInlineCode(text string, a *arena) string {
	return inlineCodePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := inlineCodePattern.FindStringSubmatch(match)
		return a.add(fragment{kind: kindInlineCode, text: m[1]})
	})
}

// rawTagMatcher recognizes whitelisted HTML tags in source text.
type rawTagMatcher struct {
	pattern *regexp.Regexp
}

// newRawTagMatcher compiles a matcher for the given element names.
// Names are lowercased; invalid names return ErrInvalidRawTag.
// An empty list disables raw tag protection.
func newRawTagMatcher(names []string) (*rawTagMatcher, error) {
	if len(names) == 0 {
		return &rawTagMatcher{}, nil
	}

	seen := make(map[string]bool, len(names))
	var clean []string
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if !tagNamePattern.MatchString(n) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRawTag, n)
		}
		if !seen[n] {
			seen[n] = true
			clean = append(clean, n)
		}
	}
	// Longest first keeps the compiled pattern stable across calls.
	sort.Slice(clean, func(i, j int) bool {
		if len(clean[i]) != len(clean[j]) {
			return len(clean[i]) > len(clean[j])
		}
		return clean[i] < clean[j]
	})

	expr := `(?i)</?(` + strings.Join(clean, "|") + `)(?:\s[^<>]*)?/?>`
	return &rawTagMatcher{pattern: regexp.MustCompile(expr)}, nil
}

// protect replaces every whitelisted tag with a token.
func (m *rawTagMatcher) protect(text string, a *arena) string {
	if m.pattern == nil {
		return text
	}
	return m.pattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := m.pattern.FindStringSubmatch(match)
		return a.add(fragment{kind: kindRawTag, text: match, tag: strings.ToLower(sub[1])})
	})
}
