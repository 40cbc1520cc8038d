package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	bookfmt "github.com/raj05122001/textbook-machine-sub001"
	"github.com/raj05122001/textbook-machine-sub001/internal/config"
	"github.com/raj05122001/textbook-machine-sub001/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrReadInput     = errors.New("failed to read input")
	ErrWriteOutput   = errors.New("failed to write output")
	ErrConverterInit = errors.New("failed to initialize converter")
)

// maxStdinSize bounds a document read from standard input.
const maxStdinSize = 32 << 20

// conversionParams groups parameters shared across batch conversion.
type conversionParams struct {
	standalone bool
	pdf        bool
	log        *zap.Logger
}

// runConvert converts the inputs, or standard input when there are none.
func runConvert(ctx context.Context, inputs []string, f *cliFlags, cfg *config.Config, pool Pool, env *Environment, log *zap.Logger) error {
	// Surface option errors before touching any file
	conv := pool.Acquire()
	if conv == nil {
		return initError(pool)
	}
	pool.Release(conv)

	params := &conversionParams{
		standalone: cfg.Document.Standalone,
		pdf:        cfg.PDF.Enabled,
		log:        log,
	}

	if isStdin(inputs) {
		return convertStdin(ctx, pool, cfg.Output.DefaultDir, params, env)
	}

	files, err := discoverAll(inputs, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	log.Debug("discovered files", zap.Int("count", len(files)), zap.Int("workers", pool.Size()))

	results := convertBatch(ctx, pool, files, params)

	failed := printResultsWithWriter(results, f.common.quiet, f.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", failed, firstError(results))
	}
	return nil
}

// convertStdin converts standard input. The result goes to output when set,
// otherwise to stdout: the PDF with --pdf, the HTML without.
func convertStdin(ctx context.Context, pool Pool, output string, params *conversionParams, env *Environment) error {
	data, err := io.ReadAll(io.LimitReader(env.Stdin, maxStdinSize))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	conv := pool.Acquire()
	if conv == nil {
		return initError(pool)
	}
	defer pool.Release(conv)

	res, err := conv.Convert(ctx, bookfmt.Input{
		Markdown:   string(data),
		Standalone: params.standalone,
		PDF:        params.pdf,
	})
	if err != nil {
		return err
	}
	logTypesetFailures(params.log, "stdin", res)

	out := []byte(res.HTML)
	if params.pdf {
		out = res.PDF
	}

	if output == "" {
		if _, err := env.Stdout.Write(out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	target := output
	if !isOutputFile(output) {
		target = filepath.Join(output, "stdin"+htmlExt)
	}
	if params.pdf {
		target = fileutil.ReplaceExt(target, pdfExt)
	}
	if err := fileutil.WriteFile(target, out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// logTypesetFailures warns about expressions left as LaTeX.
func logTypesetFailures(log *zap.Logger, name string, res *bookfmt.ConvertResult) {
	for _, span := range res.Typeset {
		if span.Err != nil {
			log.Warn("math left as LaTeX",
				zap.String("file", name), zap.Int("id", span.ID), zap.Error(span.Err))
		}
	}
}

// firstError returns the first failure in results.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
