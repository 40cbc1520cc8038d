package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookfmt [flags] [file|dir ...]")
	fmt.Fprintln(w, "       bookfmt doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert textbook Markdown with HTML and LaTeX math to styled HTML.")
	fmt.Fprintln(w, "Reads standard input when no file is given (or \"-\").")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --print-config           Print the effective config and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <s>             Block parser: regex, goldmark")
	fmt.Fprintln(w, "      --image-base-url <url>   Prefix for relative image sources")
	fmt.Fprintln(w, "      --max-image-width <css>  Image width cap (default 100%)")
	fmt.Fprintln(w, "      --max-image-height <css> Image height cap (default 480px)")
	fmt.Fprintln(w, "      --allow-tags <list>      Raw HTML tags kept as markup")
	fmt.Fprintln(w, "      --highlight <style>      Chroma style for code blocks")
	fmt.Fprintln(w, "      --heading-ids            Add slug ids to headings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Math:")
	fmt.Fprintln(w, "      --math <s>               Renderer: mathml, unicode, none")
	fmt.Fprintln(w, "      --math-cache <dur>       Cache typeset math (e.g., 10m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Standalone page:")
	fmt.Fprintln(w, "  -s, --standalone             Wrap output in a full HTML page")
	fmt.Fprintln(w, "      --style <name>           Stylesheet name")
	fmt.Fprintln(w, "      --asset-path <dir>       Custom styles/ and templates/")
	fmt.Fprintln(w, "      --title <s>              Page title (default: first heading)")
	fmt.Fprintln(w, "      --lang <tag>             Page language (default: en)")
	fmt.Fprintln(w, "      --toc                    Add a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>          TOC heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>      Min heading level (1-6)")
	fmt.Fprintln(w, "      --toc-max-depth <n>      Max heading level (1-6)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                    Also export PDF (implies --standalone)")
	fmt.Fprintln(w, "  -t, --timeout <dur>          Export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show timing and debug logs")
	fmt.Fprintln(w, "      --version                Show version")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bookfmt doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the browser, environment and assets used for conversion.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: bookfmt help [command]")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
