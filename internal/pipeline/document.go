package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
)

// DocumentData fills the page template of a standalone document.
type DocumentData struct {
	Title string
	Lang  string

	// Body is the rendered fragment.
	Body string

	// Outline is the table of contents, or nil for none.
	Outline []OutlineEntry

	// OutlineTitle heads the table of contents.
	OutlineTitle string

	// CSS is inlined in a <style> block in the head, in order.
	CSS []string
}

// Document renders standalone HTML pages around rendered fragments.
type Document struct {
	tmpl *template.Template
}

// NewDocument parses the page template. The template receives Title and Lang
// as text and Outline and Body as trusted HTML.
func NewDocument(tmplContent string) (*Document, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", ErrDocumentRender, err)
	}
	return &Document{tmpl: tmpl}, nil
}

// Render executes the template and inlines the stylesheets.
func (d *Document) Render(ctx context.Context, data *DocumentData) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	lang := data.Lang
	if lang == "" {
		lang = "en"
	}
	view := struct {
		Title   string
		Lang    string
		Outline template.HTML
		Body    template.HTML
	}{
		Title: data.Title,
		Lang:  lang,
		// #nosec G203 -- produced by the renderer, which escapes user text
		Outline: template.HTML(RenderOutline(data.Outline, data.OutlineTitle)),
		Body:    template.HTML(data.Body), // #nosec G203 -- see above
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	page := buf.String()
	for _, css := range data.CSS {
		page = InjectCSS(page, css)
	}
	return page, nil
}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
