package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder markers come from the Unicode Private Use Area. A marker is
// picked per document so that it never occurs in the source, which keeps
// tokens from colliding with user text.
const (
	markerFirst = '\uE000'
	markerLast  = '\uF8FF'
)

// fragmentKind tags a protected fragment. The byte is embedded in the token.
type fragmentKind byte

const (
	kindCodeBlock  fragmentKind = 'C'
	kindRawTag     fragmentKind = 'T'
	kindInlineCode fragmentKind = 'I'
	kindMathBlock  fragmentKind = 'M'
	kindMathInline fragmentKind = 'N'
)

// generated reports whether the fragment is produced by the converter, as
// opposed to a raw tag copied from the source.
func (k fragmentKind) generated() bool {
	return k != kindRawTag
}

// fragment is content removed from the text while other passes run.
type fragment struct {
	kind fragmentKind

	// text is the code body, the original tag text, or the escaped LaTeX.
	text string

	// lang is the fence language for code blocks.
	lang string

	// tag is the lowercase element name for raw tags.
	tag string

	// mathID is the index of the math span for math fragments.
	mathID int

	consumed bool
}

// arena stores protected fragments for one conversion. Fragments are
// addressed by the integer embedded in their placeholder token.
type arena struct {
	marker    string
	tokens    *regexp.Regexp
	fragments []fragment
	mathCount int
}

// newArena creates an arena whose marker does not occur in text.
func newArena(text string) *arena {
	marker := string(pickMarker(text))
	q := regexp.QuoteMeta(marker)
	return &arena{
		marker: marker,
		tokens: regexp.MustCompile(q + `([CTIMN])(\d+)` + q),
	}
}

// pickMarker returns the first private-use rune absent from text.
// If every candidate is taken the first one is returned.
func pickMarker(text string) rune {
	for r := rune(markerFirst); r <= markerLast; r++ {
		if !strings.ContainsRune(text, r) {
			return r
		}
	}
	return markerFirst
}

// add stores f and returns its placeholder token.
func (a *arena) add(f fragment) string {
	if f.kind == kindMathBlock || f.kind == kindMathInline {
		f.mathID = a.mathCount
		a.mathCount++
	}
	idx := len(a.fragments)
	a.fragments = append(a.fragments, f)
	return a.marker + string(rune(f.kind)) + strconv.Itoa(idx) + a.marker
}

// lookup returns the fragment referenced by a token match.
func (a *arena) lookup(kind string, index string) (*fragment, bool) {
	idx, err := strconv.Atoi(index)
	if err != nil || idx < 0 || idx >= len(a.fragments) {
		return nil, false
	}
	f := &a.fragments[idx]
	if string(rune(f.kind)) != kind {
		return nil, false
	}
	return f, true
}

// leadingFragment returns the fragment whose token starts s, if any.
func (a *arena) leadingFragment(s string) (*fragment, bool) {
	if !strings.HasPrefix(s, a.marker) {
		return nil, false
	}
	loc := a.tokens.FindStringSubmatchIndex(s)
	if loc == nil || loc[0] != 0 {
		return nil, false
	}
	return a.lookup(s[loc[2]:loc[3]], s[loc[4]:loc[5]])
}

// restore replaces the tokens of the kinds accepted by want with the output of
// render. Tokens revealed by a rendered fragment are handled in the same call.
// Unknown or already consumed tokens are removed; the number removed is returned.
func (a *arena) restore(text string, want func(fragmentKind) bool, render func(*fragment) string) (string, int) {
	dropped := 0
	for pass := 0; pass <= len(a.fragments); pass++ {
		changed := false
		text = a.tokens.ReplaceAllStringFunc(text, func(tok string) string {
			m := a.tokens.FindStringSubmatch(tok)
			f, ok := a.lookup(m[1], m[2])
			if !ok || f.consumed {
				dropped++
				changed = true
				return ""
			}
			if !want(f.kind) {
				return tok
			}
			f.consumed = true
			changed = true
			return render(f)
		})
		if !changed {
			break
		}
	}
	return text, dropped
}

// expand replaces raw tag tokens in s with their tag text without consuming
// them. Used to recover math source that contains protected tags.
func (a *arena) expand(s string) string {
	if !strings.Contains(s, a.marker) {
		return s
	}
	return a.tokens.ReplaceAllStringFunc(s, func(tok string) string {
		m := a.tokens.FindStringSubmatch(tok)
		f, ok := a.lookup(m[1], m[2])
		if !ok {
			return ""
		}
		if f.kind == kindRawTag {
			return f.text
		}
		return a.expand(f.text)
	})
}

// unconsumed counts fragments never restored.
func (a *arena) unconsumed() int {
	n := 0
	for i := range a.fragments {
		if !a.fragments[i].consumed {
			n++
		}
	}
	return n
}
