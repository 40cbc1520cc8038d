package bookfmt

import (
	"errors"

	"github.com/raj05122001/textbook-machine-sub001/internal/assets"
	"github.com/raj05122001/textbook-machine-sub001/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInternal       = errors.New("internal error")
	ErrMountMath      = pipeline.ErrMountMath
	ErrDocumentRender = pipeline.ErrDocumentRender

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Option validation errors.
	ErrInvalidEngine         = pipeline.ErrUnknownEngine
	ErrInvalidImageSize      = pipeline.ErrInvalidImageSize
	ErrInvalidRawTag         = pipeline.ErrInvalidRawTag
	ErrInvalidHighlightStyle = pipeline.ErrUnknownStyle
	ErrInvalidMathRenderer   = errors.New("invalid math renderer")
	ErrInvalidTOCDepth       = errors.New("invalid TOC depth")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
