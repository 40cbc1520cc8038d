package main

import (
	"context"
	"errors"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	bookfmt "github.com/raj05122001/textbook-machine-sub001"
	"github.com/raj05122001/textbook-machine-sub001/internal/config"
	"github.com/raj05122001/textbook-machine-sub001/internal/hints"
)

// Exit codes for the bookfmt CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for err, matching wrapped errors.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, bookfmt.ErrBrowserConnect) ||
		errors.Is(err, bookfmt.ErrPageCreate) ||
		errors.Is(err, bookfmt.ErrPageLoad) ||
		errors.Is(err, bookfmt.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, bookfmt.ErrInvalidEngine) ||
		errors.Is(err, bookfmt.ErrInvalidImageSize) ||
		errors.Is(err, bookfmt.ErrInvalidRawTag) ||
		errors.Is(err, bookfmt.ErrInvalidHighlightStyle) ||
		errors.Is(err, bookfmt.ErrInvalidMathRenderer) ||
		errors.Is(err, bookfmt.ErrInvalidTOCDepth) ||
		errors.Is(err, bookfmt.ErrStyleNotFound) ||
		errors.Is(err, bookfmt.ErrTemplateNotFound) ||
		errors.Is(err, bookfmt.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrAmbiguousOutput) ||
		errors.Is(err, flag.ErrHelp) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns advice for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, bookfmt.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, bookfmt.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, bookfmt.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{bookfmt.DefaultStyle})
	case errors.Is(err, bookfmt.ErrInvalidHighlightStyle):
		return hints.ForHighlightStyle()
	case errors.Is(err, bookfmt.ErrInvalidMathRenderer):
		return hints.ForMathRenderer([]string{bookfmt.MathMathML, bookfmt.MathUnicode, bookfmt.MathNone})
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// triedPaths extracts the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
