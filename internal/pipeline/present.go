package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultClasses is the class vocabulary added to generated tags.
var DefaultClasses = map[string]string{
	"h1":         "text-3xl font-bold mt-6 mb-4",
	"h2":         "text-2xl font-semibold mt-5 mb-3",
	"h3":         "text-xl font-semibold mt-4 mb-2",
	"h4":         "text-lg font-semibold mt-3 mb-2",
	"h5":         "text-base font-semibold mt-3 mb-1",
	"h6":         "text-sm font-semibold mt-2 mb-1",
	"pre":        "bg-gray-900 text-gray-100 rounded-lg p-4 overflow-x-auto my-4",
	"code":       "font-mono text-sm",
	"table":      "min-w-full border-collapse border border-gray-300 my-4",
	"th":         "border border-gray-300 bg-gray-100 px-3 py-2 text-left font-semibold",
	"td":         "border border-gray-300 px-3 py-2",
	"blockquote": "border-l-4 border-gray-300 pl-4 italic text-gray-600 my-4",
	"hr":         "my-6 border-gray-300",
	"a":          "text-blue-600 underline hover:text-blue-800",
	"p":          "my-3 leading-relaxed",
	"ul":         "list-disc pl-6 my-3",
	"ol":         "list-decimal pl-6 my-3",
	"img":        "rounded-md shadow-sm my-4",
}

// Default image caps.
const (
	DefaultMaxImageWidth  = "100%"
	DefaultMaxImageHeight = "480px"
)

// hideBrokenImage is attached to every generated image.
const hideBrokenImage = "this.style.display='none'"

var (
	// Opening tags that receive presentation classes
	styledTag = regexp.MustCompile(`<(h[1-6]|pre|code|table|th|td|blockquote|hr|a|p|ul|ol|img)((?:\s+[a-zA-Z-]+="[^"]*")*)\s*(/?)>`)

	// Double-quoted attribute inside a generated tag
	attrPattern = regexp.MustCompile(`([a-zA-Z-]+)="([^"]*)"`)

	// CSS length: number with unit, percentage, or a keyword
	cssLength = regexp.MustCompile(`^(?:\d+(?:\.\d+)?(?:px|em|rem|%|vw|vh|pt|cm|mm|in|ch)|0|none|auto)$`)
)

// Presentation configures class injection and image rewriting.
type Presentation struct {
	Classes        map[string]string
	ImageBaseURL   string
	MaxImageWidth  string
	MaxImageHeight string
}

// ValidateImageSize checks a CSS length used to cap image dimensions.
func ValidateImageSize(v string) error {
	if !cssLength.MatchString(v) {
		return fmt.Errorf("%w: %q", ErrInvalidImageSize, v)
	}
	return nil
}

type attr struct {
	key, val string
}

// apply adds classes to generated tags and rewrites images.
func (p *Presentation) apply(html string) string {
	return styledTag.ReplaceAllStringFunc(html, func(tag string) string {
		m := styledTag.FindStringSubmatch(tag)
		name, selfClose := m[1], m[3]

		var attrs []attr
		for _, am := range attrPattern.FindAllStringSubmatch(m[2], -1) {
			attrs = append(attrs, attr{key: am[1], val: am[2]})
		}

		if cls := p.Classes[name]; cls != "" {
			attrs = mergeAttr(attrs, "class", cls, " ")
		}
		if name == "img" {
			attrs = p.imageAttrs(attrs)
		}

		var b strings.Builder
		b.WriteString("<" + name)
		for _, a := range attrs {
			fmt.Fprintf(&b, ` %s="%s"`, a.key, a.val)
		}
		if selfClose != "" {
			b.WriteString(" /")
		}
		b.WriteString(">")
		return b.String()
	})
}

// imageAttrs absolutizes a relative src, caps the image size and hides it
// when it fails to load.
func (p *Presentation) imageAttrs(attrs []attr) []attr {
	for i := range attrs {
		if attrs[i].key == "src" {
			attrs[i].val = p.resolveImage(attrs[i].val)
		}
	}

	style := fmt.Sprintf("max-width:%s;max-height:%s;height:auto;display:block;margin:0 auto;",
		orDefault(p.MaxImageWidth, DefaultMaxImageWidth),
		orDefault(p.MaxImageHeight, DefaultMaxImageHeight))
	attrs = mergeAttr(attrs, "style", style, "")
	return setAttr(attrs, "onerror", hideBrokenImage)
}

// resolveImage joins a relative image path with the configured base URL.
func (p *Presentation) resolveImage(src string) string {
	if p.ImageBaseURL == "" || !isRelativeURL(src) {
		return src
	}
	rel := strings.TrimLeft(strings.TrimPrefix(src, "./"), "/")
	return strings.TrimRight(p.ImageBaseURL, "/") + "/" + rel
}

// isRelativeURL reports whether src needs a base URL.
func isRelativeURL(src string) bool {
	lower := strings.ToLower(src)
	return !(strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "//"))
}

// mergeAttr appends value to an existing attribute or adds it.
func mergeAttr(attrs []attr, key, value, sep string) []attr {
	for i := range attrs {
		if attrs[i].key != key {
			continue
		}
		switch {
		case attrs[i].val == "":
			attrs[i].val = value
		case key == "style":
			attrs[i].val = strings.TrimSuffix(attrs[i].val, ";") + ";" + value
		default:
			attrs[i].val = attrs[i].val + sep + value
		}
		return attrs
	}
	return append(attrs, attr{key: key, val: value})
}

func setAttr(attrs []attr, key, value string) []attr {
	for i := range attrs {
		if attrs[i].key == key {
			attrs[i].val = value
			return attrs
		}
	}
	return append(attrs, attr{key: key, val: value})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
