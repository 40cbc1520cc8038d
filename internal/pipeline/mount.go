package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// mathIDAttr links a math element to its MathSpan.
const mathIDAttr = "data-math-id"

// Mount replaces the content of every math element whose id has an entry in
// markup with that markup. Elements without an entry keep their LaTeX text.
// Everything outside the replaced content is copied byte for byte, so raw
// tags keep their original spelling. Mounting the same markup twice gives
// the same result.
func Mount(htmlContent string, markup map[int]string) (string, error) {
	if len(markup) == 0 || !strings.Contains(htmlContent, mathIDAttr) {
		return htmlContent, nil
	}

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	var b strings.Builder
	b.Grow(len(htmlContent))

	// While skipTag is set, the children of a mounted element are dropped
	// until its matching end tag.
	var skipTag string
	depth := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %v", ErrMountMath, err)
			}
			break
		}
		raw := z.Raw()

		if skipTag != "" {
			switch tt {
			case html.StartTagToken:
				if name, _ := z.TagName(); string(name) == skipTag {
					depth++
				}
			case html.EndTagToken:
				// TagName lowercases the buffer raw points into.
				end := string(raw)
				if name, _ := z.TagName(); string(name) == skipTag {
					depth--
					if depth == 0 {
						skipTag = ""
						b.WriteString(end)
					}
				}
			}
			continue
		}

		// Written before TagName, which lowercases the buffer in place.
		b.Write(raw)
		if tt != html.StartTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		id, ok := mathID(z, hasAttr)
		if !ok {
			continue
		}
		if m, ok := markup[id]; ok {
			b.WriteString(m)
			skipTag, depth = string(name), 1
		}
	}

	if skipTag != "" {
		b.WriteString("</" + skipTag + ">")
	}
	return b.String(), nil
}

// mathID reads the attributes of the current start tag and returns its
// data-math-id when the tag is a math-inline or math-block element.
func mathID(z *html.Tokenizer, hasAttr bool) (int, bool) {
	var idVal string
	isMath := false
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		switch string(key) {
		case mathIDAttr:
			idVal = string(val)
		case "class":
			for _, c := range strings.Fields(string(val)) {
				if c == "math-inline" || c == "math-block" {
					isMath = true
				}
			}
		}
	}
	if !isMath || idVal == "" {
		return 0, false
	}
	id, err := strconv.Atoi(idVal)
	if err != nil {
		return 0, false
	}
	return id, true
}
