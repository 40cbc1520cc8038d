package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

var (
	// Generated heading without attributes
	bareHeading = regexp.MustCompile(`(?s)<h([1-6])>(.*?)</h[1-6]>`)

	// Heading carrying an id, possibly with other attributes
	idHeading = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

	// First-level heading with any attributes
	h1Heading = regexp.MustCompile(`(?is)<h1(?:\s[^>]*)?>(.*?)</h1>`)
)

// assignHeadingIDs gives every generated heading a unique slug id. Raw tag
// tokens still in the heading are expanded so only their text reaches the slug.
func assignHeadingIDs(text string, a *arena) string {
	seen := make(map[string]int)
	return bareHeading.ReplaceAllStringFunc(text, func(match string) string {
		m := bareHeading.FindStringSubmatch(match)
		id := slug.Make(stripTags(a.expand(m[2])))
		if id == "" {
			id = "section"
		}
		if n := seen[id]; n > 0 {
			seen[id] = n + 1
			id = id + "-" + strconv.Itoa(n)
		} else {
			seen[id] = 1
		}
		return fmt.Sprintf(`<h%s id="%s">%s</h%s>`, m[1], id, m[2], m[1])
	})
}

// stripTags removes tags and decodes entities.
func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(anyTag.ReplaceAllString(s, "")))
}

// FirstHeading returns the text of the first h1 in htmlContent, or "".
func FirstHeading(htmlContent string) string {
	m := h1Heading.FindStringSubmatch(htmlContent)
	if m == nil {
		return ""
	}
	return stripTags(m[1])
}

// OutlineEntry is a heading in the document outline.
type OutlineEntry struct {
	Level  int
	ID     string
	Title  string
	Number string
}

// Outline returns the numbered headings with ids between minLevel and
// maxLevel. The shallowest heading found becomes depth one and skipped levels
// are closed up, so h1 followed by h3 numbers as 1. and 1.1.
func Outline(htmlContent string, minLevel, maxLevel int) []OutlineEntry {
	var entries []OutlineEntry
	var counters [6]int
	base, prev := 0, 0

	for _, m := range idHeading.FindAllStringSubmatch(htmlContent, -1) {
		level, _ := strconv.Atoi(m[1])
		if level < minLevel || level > maxLevel {
			continue
		}
		if base == 0 {
			base = level
		}
		depth := level - base + 1
		if depth < 1 {
			depth = 1
		}
		if prev > 0 && depth > prev+1 {
			depth = prev + 1
		}
		for i := depth; i < len(counters); i++ {
			counters[i] = 0
		}
		counters[depth-1]++
		prev = depth

		parts := make([]string, depth)
		for i := 0; i < depth; i++ {
			parts[i] = strconv.Itoa(counters[i])
		}
		entries = append(entries, OutlineEntry{
			Level:  depth,
			ID:     m[2],
			Title:  stripTags(m[3]),
			Number: strings.Join(parts, ".") + ".",
		})
	}
	return entries
}

// RenderOutline renders entries as a numbered table of contents.
func RenderOutline(entries []OutlineEntry, title string) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<nav class="toc">`)
	if title != "" {
		b.WriteString(`<h2 class="toc-title">` + html.EscapeString(title) + `</h2>`)
	}
	for _, e := range entries {
		fmt.Fprintf(&b, `<div class="toc-item" style="padding-left:%.1fem"><a href="#%s">%s %s</a></div>`,
			float64(e.Level-1)*1.5, html.EscapeString(e.ID), e.Number, html.EscapeString(e.Title))
	}
	b.WriteString(`</nav>`)
	return b.String()
}
