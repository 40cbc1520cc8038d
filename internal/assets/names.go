package assets

// Built-in asset names.
const (
	// DefaultStyleName is the stylesheet applied to standalone documents.
	DefaultStyleName = "textbook"

	// PrintStyleName holds page rules added when exporting to PDF.
	PrintStyleName = "print"

	// DocumentTemplateName is the page template wrapping rendered content.
	DocumentTemplateName = "document"
)
