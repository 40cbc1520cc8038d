// Package hints appends actionable advice to CLI error messages.
// Every hint reads "\n  hint: <text>" so it lines up under the error.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/raj05122001/textbook-machine-sub001/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the rod environment variables that usually fix
// a failed Chrome launch, skipping the ones already set.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	return formatHints(hints)
}

// ForTimeout suggests raising the PDF timeout.
func ForTimeout() string {
	return format("long chapters may need a larger --timeout")
}

// ForConfigNotFound suggests --config, or creating the config under the
// user config directory when that location was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + "bookfmt" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory explains output directory failures.
func ForOutputDirectory() string {
	return format("check that the parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that can be used instead.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForHighlightStyle points at chroma style names.
func ForHighlightStyle() string {
	return format("use a chroma style name such as github or monokai")
}

// ForMathRenderer lists the accepted renderer names.
func ForMathRenderer(names []string) string {
	return format("math renderer must be one of: " + strings.Join(names, ", "))
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
