package typeset

import (
	"fmt"
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNesting bounds group nesting so hostile input cannot exhaust the stack.
const maxNesting = 64

// Unicode renders LaTeX as plain Unicode text: Greek letters and operators
// become their code points, simple scripts use superscript and subscript
// characters, and fractions are written inline as a/b. Anything it does not
// know is kept as source.
type Unicode struct{}

// NewUnicode creates a Unicode renderer.
func NewUnicode() *Unicode {
	return &Unicode{}
}

func (u *Unicode) Render(latex string, opts Options) (string, error) {
	if strings.TrimSpace(latex) == "" {
		return fail(latex, opts, ErrEmptyExpression)
	}

	p := &texParser{src: latex, strict: opts.ThrowOnError}
	text := collapseSpace(p.parseUntil(0))
	if p.err != nil {
		return fail(latex, opts, p.err)
	}
	return `<span class="math-text">` + html.EscapeString(text) + `</span>`, nil
}

// ToText converts latex to Unicode text without markup. Unknown commands are
// kept as written.
func ToText(latex string) string {
	p := &texParser{src: latex}
	return collapseSpace(p.parseUntil(0))
}

// collapseSpace trims s and reduces every whitespace run to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// texParser is a recursive descent reader over one expression.
type texParser struct {
	src    string
	pos    int
	depth  int
	strict bool
	err    error
}

// setErr records the first error. Lenient parsers only record structural
// errors passed with force.
func (p *texParser) setErr(err error, force bool) {
	if p.err == nil && (p.strict || force) {
		p.err = err
	}
}

// parseUntil converts input up to the stop byte (not consumed) or the end
// when stop is 0.
func (p *texParser) parseUntil(stop byte) string {
	var b strings.Builder
	for p.pos < len(p.src) && p.err == nil {
		c := p.src[p.pos]
		switch {
		case stop != 0 && c == stop:
			return b.String()
		case c == '\\':
			b.WriteString(p.command())
		case c == '{':
			b.WriteString(p.group())
		case c == '}':
			p.setErr(fmt.Errorf("%w: unexpected }", ErrParse), false)
			p.pos++
		case c == '^':
			p.pos++
			b.WriteString(script(p.argument(), superscripts, "^"))
		case c == '_':
			p.pos++
			b.WriteString(script(p.argument(), subscripts, "_"))
		case c == '&' || c == '~':
			p.pos++
			b.WriteByte(' ')
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.skipSpace()
			b.WriteByte(' ')
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += size
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (p *texParser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\n\r", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

// group reads a {...} group starting at the opening brace.
func (p *texParser) group() string {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		p.setErr(fmt.Errorf("%w: nesting deeper than %d", ErrParse, maxNesting), true)
		p.pos = len(p.src)
		return ""
	}

	p.pos++ // {
	body := p.parseUntil('}')
	if p.pos >= len(p.src) {
		p.setErr(fmt.Errorf("%w: missing }", ErrParse), false)
		return body
	}
	p.pos++ // }
	return body
}

// rawGroup returns the unparsed text of a {...} group, or "" when none.
func (p *texParser) rawGroup() string {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return ""
	}
	end := strings.IndexByte(p.src[p.pos:], '}')
	if end < 0 {
		p.setErr(fmt.Errorf("%w: missing }", ErrParse), false)
		s := p.src[p.pos+1:]
		p.pos = len(p.src)
		return s
	}
	s := p.src[p.pos+1 : p.pos+end]
	p.pos += end + 1
	return s
}

// argument reads one command argument: a group, a command or a single rune.
func (p *texParser) argument() string {
	p.skipSpace()
	if p.pos >= len(p.src) {
		p.setErr(fmt.Errorf("%w: missing argument", ErrParse), false)
		return ""
	}
	switch p.src[p.pos] {
	case '{':
		return p.group()
	case '\\':
		return p.command()
	}
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return string(r)
}

// optional reads a [...] argument if present.
func (p *texParser) optional() string {
	if p.pos >= len(p.src) || p.src[p.pos] != '[' {
		return ""
	}
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return ""
	}
	inner := &texParser{src: p.src[p.pos+1 : p.pos+end], strict: p.strict, depth: p.depth}
	s := inner.parseUntil(0)
	if inner.err != nil {
		p.setErr(inner.err, true)
	}
	p.pos += end + 1
	return s
}

// commandName reads the name after a backslash.
func (p *texParser) commandName() string {
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return ""
	}
	start := p.pos
	for p.pos < len(p.src) && isASCIILetter(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		_, size := utf8.DecodeRuneInString(p.src[p.pos:])
		p.pos += size
	}
	return p.src[start:p.pos]
}

func (p *texParser) command() string {
	name := p.commandName()
	if s, ok := symbols[name]; ok {
		return s
	}

	switch name {
	case "":
		return ""
	case `\`:
		return "; "
	case "frac", "dfrac", "tfrac", "cfrac":
		num := p.argument()
		den := p.argument()
		return fraction(num, den)
	case "sqrt":
		index := strings.TrimSpace(p.optional())
		return root(index, p.argument())
	case "not":
		return negate(p.argument())
	case "mathbb":
		return mapRunes(p.argument(), blackboard)
	case "binom", "dbinom", "tbinom":
		n := p.argument()
		k := p.argument()
		return "C(" + n + "," + k + ")"
	case "left", "right", "bigl", "bigr", "Bigl", "Bigr", "big", "Big", "bigg", "Bigg":
		return p.delimiter()
	case "begin":
		return p.environment(p.rawGroup())
	case "end", "label", "color", "tag":
		p.rawGroup()
		return ""
	case "displaystyle", "textstyle", "scriptstyle", "limits", "nolimits", "nonumber":
		return ""
	}

	if mark, ok := accents[name]; ok {
		return accent(p.argument(), mark)
	}
	if textCommands[name] {
		return p.argument()
	}

	p.setErr(fmt.Errorf("%w: \\%s", ErrUnknownCommand, name), false)
	return `\` + name
}

// delimiter reads the delimiter following \left, \right and sizing commands.
func (p *texParser) delimiter() string {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return ""
	}
	switch c := p.src[p.pos]; c {
	case '.':
		p.pos++
		return ""
	case '\\':
		return p.command()
	}
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return string(r)
}

// environmentDelims wraps matrix-like environments.
var environmentDelims = map[string][2]string{
	"matrix": {"", ""}, "pmatrix": {"(", ")"}, "bmatrix": {"[", "]"},
	"Bmatrix": {"{", "}"}, "vmatrix": {"|", "|"}, "Vmatrix": {"‖", "‖"},
	"cases": {"{ ", ""},
}

// environment renders \begin{name}...\end{name} on one line, rows separated
// by semicolons.
func (p *texParser) environment(name string) string {
	endMarker := `\end{` + name + `}`
	rest := p.src[p.pos:]
	end := strings.Index(rest, endMarker)
	if end < 0 {
		p.setErr(fmt.Errorf("%w: missing %s", ErrParse, endMarker), false)
		end = len(rest)
		p.pos = len(p.src)
	} else {
		p.pos += end + len(endMarker)
	}

	body := rest[:end]
	if name == "array" {
		// Skip the column spec.
		inner := &texParser{src: body}
		inner.rawGroup()
		body = body[inner.pos:]
	}

	inner := &texParser{src: body, strict: p.strict, depth: p.depth + 1}
	text := strings.ReplaceAll(collapseSpace(inner.parseUntil(0)), " ;", ";")
	text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
	if inner.err != nil {
		p.setErr(inner.err, true)
	}
	d := environmentDelims[name]
	return d[0] + text + d[1]
}

// script renders s as a superscript or subscript, falling back to a marker
// when some rune has no script form.
func script(s string, table map[rune]rune, marker string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if mapped, ok := mapAll(s, table); ok {
		return mapped
	}
	if utf8.RuneCountInString(s) == 1 {
		return marker + s
	}
	return marker + "(" + s + ")"
}

func mapAll(s string, table map[rune]rune) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			return "", false
		}
		b.WriteRune(m)
	}
	return b.String(), true
}

func mapRunes(s string, table map[rune]rune) string {
	return strings.Map(func(r rune) rune {
		if m, ok := table[r]; ok {
			return m
		}
		return r
	}, s)
}

var vulgarFractions = map[[2]string]string{
	{"1", "2"}: "½", {"1", "3"}: "⅓", {"2", "3"}: "⅔", {"1", "4"}: "¼",
	{"3", "4"}: "¾", {"1", "5"}: "⅕", {"1", "6"}: "⅙", {"1", "8"}: "⅛",
}

func fraction(num, den string) string {
	num, den = strings.TrimSpace(num), strings.TrimSpace(den)
	if f, ok := vulgarFractions[[2]string{num, den}]; ok {
		return f
	}
	return parenthesize(num) + "/" + parenthesize(den)
}

func root(index, radicand string) string {
	radicand = parenthesize(strings.TrimSpace(radicand))
	switch index {
	case "", "2":
		return "√" + radicand
	case "3":
		return "∛" + radicand
	case "4":
		return "∜" + radicand
	}
	return script(index, superscripts, "^") + "√" + radicand
}

func negate(s string) string {
	s = strings.TrimSpace(s)
	if n, ok := negated[s]; ok {
		return n
	}
	if s == "" {
		return ""
	}
	return s + "\u0338"
}

// accent puts mark after the first rune of s.
func accent(s string, mark rune) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return string(mark)
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size] + string(mark) + s[size:]
}

// parenthesize wraps s unless it is a single number or word.
func parenthesize(s string) string {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' {
			return "(" + s + ")"
		}
	}
	return s
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Compile-time interface check.
var _ Renderer = (*Unicode)(nil)
