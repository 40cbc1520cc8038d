package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Block and inline rewrite patterns. They run over already escaped text, so
// a literal ">" appears as "&gt;".
var (
	thematicBreakLine = regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	atxHeading        = regexp.MustCompile(`(?m)^ {0,3}(#{1,6})[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)
	setextUnderline   = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
	blockquoteLine    = regexp.MustCompile(`(?m)^ {0,3}&gt;[ \t]?(.*)$`)
	imagePattern      = regexp.MustCompile(`!\[([^\]\n]*)\]\(([^\s()"]+)\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]\n]+)\]\((https?://[^\s()"]+)\)`)
	strongPattern     = regexp.MustCompile(`\*\*([^*\s](?:[^\n]*?[^*\s])?)\*\*`)
	emphasisPattern   = regexp.MustCompile(`\*([^*\s](?:[^*\n]*[^*\s])?)\*|_([^_\s](?:[^_\n]*[^_\s])?)_`)
	strikePattern     = regexp.MustCompile(`~~([^~\n]+?)~~`)
	orderedItem       = regexp.MustCompile(`^[ \t]*(\d+)\.[ \t]+(.*)$`)
	unorderedItem     = regexp.MustCompile(`^[ \t]*[-*+][ \t]+(.*)$`)
	tableSeparator    = regexp.MustCompile(`^[ \t]*\|?[ \t]*:?-+:?[ \t]*(?:\|[ \t]*:?-+:?[ \t]*)*\|?[ \t]*$`)
	anyTag            = regexp.MustCompile(`<[^<>]*>`)
)

// padBlock surrounds a generated block element with blank lines so the
// paragraph wrapper sees it as a block of its own.
func padBlock(s string) string {
	return "\n\n" + s + "\n\n"
}

// transformBlocks runs the Markdown passes in order over escaped text.
func transformBlocks(text string) string {
	text = thematicBreaks(text)
	text = atxHeadings(text)
	text = setextHeadings(text)
	text = blockquotes(text)
	text = images(text)
	text = links(text)
	text = replaceOutsideTags(text, strongPattern, "<strong>$1</strong>")
	text = mapText(text, emphasis)
	text = replaceOutsideTags(text, strikePattern, "<del>$1</del>")
	text = lists(text)
	text = tables(text)
	return text
}

// thematicBreaks turns ---, *** and ___ lines into <hr>. A dash line right
// under a text line is a Setext underline and is left for setextHeadings.
func thematicBreaks(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !thematicBreakLine.MatchString(line) {
			continue
		}
		if i > 0 && isDashUnderline(line) && isSetextContent(lines[i-1]) {
			continue
		}
		lines[i] = padBlock("<hr>")
	}
	return strings.Join(lines, "\n")
}

func isDashUnderline(line string) bool {
	t := strings.TrimSpace(line)
	return t != "" && strings.Trim(t, "-") == ""
}

// isSetextContent reports whether line can be the text of a Setext heading.
func isSetextContent(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" || strings.HasPrefix(t, "<") {
		return false
	}
	return !orderedItem.MatchString(line) && !unorderedItem.MatchString(line) &&
		!strings.Contains(t, "|")
}

func atxHeadings(text string) string {
	return atxHeading.ReplaceAllStringFunc(text, func(match string) string {
		m := atxHeading.FindStringSubmatch(match)
		level := len(m[1])
		return padBlock(fmt.Sprintf("<h%d>%s</h%d>", level, strings.TrimSpace(m[2]), level))
	})
}

// setextHeadings handles "Title\n=====" (h1) and "Title\n-----" (h2).
func setextHeadings(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if i+1 < len(lines) && isSetextContent(lines[i]) {
			if m := setextUnderline.FindStringSubmatch(lines[i+1]); m != nil {
				level := 2
				if m[1][0] == '=' {
					level = 1
				}
				out = append(out, padBlock(fmt.Sprintf("<h%d>%s</h%d>", level, strings.TrimSpace(lines[i]), level)))
				i++
				continue
			}
		}
		out = append(out, lines[i])
	}
	return strings.Join(out, "\n")
}

// blockquotes converts each "> text" line to its own <blockquote>.
func blockquotes(text string) string {
	return blockquoteLine.ReplaceAllStringFunc(text, func(match string) string {
		m := blockquoteLine.FindStringSubmatch(match)
		return padBlock("<blockquote>" + strings.TrimSpace(m[1]) + "</blockquote>")
	})
}

func images(text string) string {
	return imagePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := imagePattern.FindStringSubmatch(match)
		alt := strings.ReplaceAll(m[1], `"`, "&quot;")
		return fmt.Sprintf(`<img alt="%s" src="%s" />`, alt, m[2])
	})
}

// links converts [text](http(s)://url). Relative targets stay as text.
func links(text string) string {
	return linkPattern.ReplaceAllString(text,
		`<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
}

// emphasis converts *text* and _text_. The underscore form needs a non-word
// character on both sides so snake_case identifiers survive.
func emphasis(text string) string {
	locs := emphasisPattern.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		var inner string
		switch {
		case loc[2] >= 0:
			inner = text[loc[2]:loc[3]]
		case isWordByteAt(text, start-1) || isWordByteAt(text, end):
			continue
		default:
			inner = text[loc[4]:loc[5]]
		}
		b.WriteString(text[last:start])
		b.WriteString("<em>" + inner + "</em>")
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func isWordByteAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// mapText applies fn to the text between tags, leaving the tags untouched.
func mapText(s string, fn func(string) string) string {
	locs := anyTag.FindAllStringIndex(s, -1)
	if locs == nil {
		return fn(s)
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(fn(s[last:loc[0]]))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(fn(s[last:]))
	return b.String()
}

// replaceOutsideTags replaces matches of re whose delimiters lie in text,
// skipping those that start or end inside a generated tag such as an img alt.
// A match may still enclose whole tags, so **[link](url)** keeps working.
func replaceOutsideTags(s string, re *regexp.Regexp, template string) string {
	tags := anyTag.FindAllStringIndex(s, -1)
	if tags == nil {
		return re.ReplaceAllString(s, template)
	}
	inTag := func(i int) bool {
		for _, t := range tags {
			if t[0] > i {
				return false
			}
			if i < t[1] {
				return true
			}
		}
		return false
	}

	var b strings.Builder
	last, pos := 0, 0
	for pos < len(s) {
		loc := re.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}
		start, end := loc[0], loc[1]
		if inTag(start) || inTag(end-1) {
			pos = start + 1
			continue
		}
		b.WriteString(s[last:start])
		b.Write(re.ExpandString(nil, template, s, loc))
		last, pos = end, end
	}
	b.WriteString(s[last:])
	return b.String()
}

// lists collapses runs of list item lines into a single <ol> or <ul>.
// An ordered list starts at the number of its first item.
func lists(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if m := orderedItem.FindStringSubmatch(lines[i]); m != nil {
			start, err := strconv.Atoi(m[1])
			if err != nil {
				start = 1
			}
			var b strings.Builder
			fmt.Fprintf(&b, `<ol start="%d">`, start)
			for ; i < len(lines); i++ {
				item := orderedItem.FindStringSubmatch(lines[i])
				if item == nil {
					break
				}
				b.WriteString("<li>" + strings.TrimSpace(item[2]) + "</li>")
			}
			b.WriteString("</ol>")
			out = append(out, padBlock(b.String()))
			continue
		}
		if m := unorderedItem.FindStringSubmatch(lines[i]); m != nil {
			var b strings.Builder
			b.WriteString("<ul>")
			for ; i < len(lines); i++ {
				item := unorderedItem.FindStringSubmatch(lines[i])
				if item == nil {
					break
				}
				b.WriteString("<li>" + strings.TrimSpace(item[1]) + "</li>")
			}
			b.WriteString("</ul>")
			out = append(out, padBlock(b.String()))
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return strings.Join(out, "\n")
}

// tables converts pipe tables: a header row, a separator row and at least one
// data row. Data rows keep whatever cell count splitting produces.
func tables(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if i+2 < len(lines) && isTableRow(lines[i]) &&
			strings.Contains(lines[i+1], "|") && tableSeparator.MatchString(lines[i+1]) &&
			isTableRow(lines[i+2]) {
			var b strings.Builder
			b.WriteString("<table><thead><tr>")
			for _, cell := range splitRow(lines[i]) {
				b.WriteString("<th>" + cell + "</th>")
			}
			b.WriteString("</tr></thead><tbody>")
			for i += 2; i < len(lines) && isTableRow(lines[i]); i++ {
				b.WriteString("<tr>")
				for _, cell := range splitRow(lines[i]) {
					b.WriteString("<td>" + cell + "</td>")
				}
				b.WriteString("</tr>")
			}
			b.WriteString("</tbody></table>")
			out = append(out, padBlock(b.String()))
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return strings.Join(out, "\n")
}

func isTableRow(line string) bool {
	return strings.Contains(line, "|") && strings.TrimSpace(line) != ""
}

// splitRow splits "| a | b |" into trimmed cells.
func splitRow(line string) []string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	cells := strings.Split(t, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
