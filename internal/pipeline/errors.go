package pipeline

import "errors"

// Sentinel errors for pipeline configuration.
var (
	ErrInvalidRawTag    = errors.New("invalid raw tag name")
	ErrInvalidImageSize = errors.New("invalid image size")
	ErrUnknownStyle     = errors.New("unknown highlight style")
	ErrMountMath        = errors.New("mounting typeset math failed")
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrUnknownEngine    = errors.New("unknown conversion engine")
	ErrDocumentRender   = errors.New("document template rendering failed")
)
