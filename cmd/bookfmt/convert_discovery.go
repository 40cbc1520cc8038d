package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/raj05122001/textbook-machine-sub001/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension = errors.New("file must have a .md or .markdown extension")
	ErrNoMarkdownFiles  = errors.New("no markdown files found")
	ErrAmbiguousOutput  = errors.New("output file given for several inputs")
)

const (
	stdinArg = "-"
	htmlExt  = ".html"
	pdfExt   = ".pdf"
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string // HTML output; the PDF sits next to it
}

// PDFPath returns where the PDF of f is written.
func (f FileToConvert) PDFPath() string {
	return fileutil.ReplaceExt(f.OutputPath, pdfExt)
}

// discoverAll expands every input into the files to convert.
func discoverAll(inputs []string, output string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, in := range inputs {
		found, err := discoverFiles(in, output)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, strings.Join(inputs, ", "))
	}
	if isOutputFile(output) && len(files) > 1 {
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousOutput, output)
	}
	return files, nil
}

// discoverFiles finds the markdown files under inputPath.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileToConvert{{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, outputDir, ""),
		}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath),
		})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the HTML output path for a markdown file.
// Directory inputs keep their layout under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := fileutil.ReplaceExt(filepath.Base(inputPath), htmlExt)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	if isOutputFile(outputDir) {
		return fileutil.ReplaceExt(outputDir, htmlExt)
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(outputDir, name)
}

// isOutputFile reports whether output names a file rather than a directory.
func isOutputFile(output string) bool {
	ext := strings.ToLower(filepath.Ext(output))
	return ext == htmlExt || ext == pdfExt
}

// isStdin reports whether the inputs ask for standard input.
func isStdin(inputs []string) bool {
	return len(inputs) == 0 || (len(inputs) == 1 && inputs[0] == stdinArg)
}
