package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that apply to every run.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds flags for the HTML fragment.
type renderFlags struct {
	engine         string
	imageBaseURL   string
	maxImageWidth  string
	maxImageHeight string
	allowTags      []string
	highlight      string
	math           string
	mathCache      string
	headingIDs     bool
}

// documentFlags holds flags for standalone pages.
type documentFlags struct {
	standalone  bool
	style       string
	assetPath   string
	title       string
	lang        string
	toc         bool
	tocTitle    string
	tocMinDepth int
	tocMaxDepth int
}

// outputFlags holds output and execution flags.
type outputFlags struct {
	output      string
	pdf         bool
	workers     int
	timeout     string
	printConfig bool
	version     bool
}

// cliFlags holds all flags of the command.
type cliFlags struct {
	common   commonFlags
	render   renderFlags
	document documentFlags
	output   outputFlags

	// set records the flags given on the command line, so that only those
	// override the config file.
	set map[string]bool
}

// changed reports whether the named flag was given.
func (f *cliFlags) changed(name string) bool {
	return f.set[name]
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.engine, "engine", "", "block parser: regex, goldmark")
	fs.StringVar(&f.imageBaseURL, "image-base-url", "", "prefix for relative image sources")
	fs.StringVar(&f.maxImageWidth, "max-image-width", "", "CSS max-width of images (default 100%)")
	fs.StringVar(&f.maxImageHeight, "max-image-height", "", "CSS max-height of images (default 480px)")
	fs.StringSliceVar(&f.allowTags, "allow-tags", nil, "raw HTML tags kept as markup (comma-separated)")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code blocks")
	fs.StringVar(&f.math, "math", "", "math renderer: mathml, unicode, none")
	fs.StringVar(&f.mathCache, "math-cache", "", "cache typeset math for a duration (e.g., 10m)")
	fs.BoolVar(&f.headingIDs, "heading-ids", false, "add slug ids to headings")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "wrap output in a full HTML page")
	fs.StringVar(&f.style, "style", "", "stylesheet name for standalone pages")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/ and templates/")
	fs.StringVar(&f.title, "title", "", "page title (default: first heading)")
	fs.StringVar(&f.lang, "lang", "", "page language (default: en)")
	fs.BoolVar(&f.toc, "toc", false, "add a table of contents")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.tocMinDepth, "toc-min-depth", 0, "min heading level in the TOC (1-6)")
	fs.IntVar(&f.tocMaxDepth, "toc-max-depth", 0, "max heading level in the TOC (1-6)")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.pdf, "pdf", false, "also export PDF (implies --standalone)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version")
}

// parseFlags parses args, without the program name, and returns the
// positional inputs.
func parseFlags(args []string, usage io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("bookfmt", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &cliFlags{set: make(map[string]bool)}

	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addDocumentFlags(fs, &f.document)
	addOutputFlags(fs, &f.output)

	fs.Usage = func() { printUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	return f, fs.Args(), nil
}
