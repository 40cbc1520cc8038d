package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/raj05122001/textbook-machine-sub001/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxURLLength       = 2048 // Browser limit
	MaxTitleLength     = 200  // Document title
	MaxTOCTitleLength  = 100  // TOC title
	MaxLangLength      = 35   // BCP 47 tag
	MaxStyleLength     = 64   // Asset name
	MaxSizeLength      = 16   // "480px", "100%"
	MaxClassLength     = 500  // Class list for one tag
	MaxMacroLength     = 500  // Macro expansion
	MaxPathLength      = 4096 // PATH_MAX
	MaxAllowedRawTags  = 64
	MaxWorkers         = 8
	defaultConfigDir   = "bookfmt"
	defaultPDFTimeout  = 30 * time.Second
	defaultTOCMaxDepth = 3
)

// Recognized values.
const (
	EngineRegex    = "regex"
	EngineGoldmark = "goldmark"

	MathMathML  = "mathml"
	MathUnicode = "unicode"
	MathNone    = "none"
)

var (
	// Lowercase HTML tag name
	tagNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

	// LaTeX macro name with its leading backslash
	macroPattern = regexp.MustCompile(`^\\[a-zA-Z]+$`)
)

// Config holds all configuration for document conversion.
type Config struct {
	Engine         string            `yaml:"engine"` // "regex" (default) or "goldmark"
	Images         ImagesConfig      `yaml:"images"`
	AllowedRawTags []string          `yaml:"allowedRawTags"` // nil = built-in list
	Classes        map[string]string `yaml:"classes"`        // nil = built-in vocabulary
	Highlight      string            `yaml:"highlight"`      // chroma style, empty = no highlighting
	HeadingIDs     bool              `yaml:"headingIds"`
	Math           MathConfig        `yaml:"math"`
	Document       DocumentConfig    `yaml:"document"`
	TOC            TOCConfig         `yaml:"toc"`
	Assets         AssetsConfig      `yaml:"assets"`
	PDF            PDFConfig         `yaml:"pdf"`
	Output         OutputConfig      `yaml:"output"`
	Workers        int               `yaml:"workers"` // 0 = auto
}

// ImagesConfig defines image rewriting options.
type ImagesConfig struct {
	BaseURL   string `yaml:"baseUrl"`   // Prefix for relative sources
	MaxWidth  string `yaml:"maxWidth"`  // CSS length, empty = default
	MaxHeight string `yaml:"maxHeight"` // CSS length, empty = default
}

// MathConfig defines math typesetting options.
type MathConfig struct {
	Renderer string            `yaml:"renderer"` // "mathml" (default), "unicode", "none"
	CacheTTL string            `yaml:"cacheTtl"` // Go duration, empty = no cache
	Macros   map[string]string `yaml:"macros"`   // \name -> expansion
}

// DocumentConfig defines the standalone page wrapper.
type DocumentConfig struct {
	Standalone bool   `yaml:"standalone"`
	Style      string `yaml:"style"` // Asset name, empty = built-in
	Title      string `yaml:"title"`
	Lang       string `yaml:"lang"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MinDepth int    `yaml:"minDepth"` // 1-6, 0 = 1
	MaxDepth int    `yaml:"maxDepth"` // 1-6, 0 = 3
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Enabled bool   `yaml:"enabled"`
	Timeout string `yaml:"timeout"` // Go duration, empty = 30s
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = same as source
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	switch c.Engine {
	case "", EngineRegex, EngineGoldmark:
	default:
		return fmt.Errorf("%w: engine: %q (must be %s or %s)", ErrInvalidValue, c.Engine, EngineRegex, EngineGoldmark)
	}

	if err := validateFieldLength("images.baseUrl", c.Images.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.maxWidth", c.Images.MaxWidth, MaxSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.maxHeight", c.Images.MaxHeight, MaxSizeLength); err != nil {
		return err
	}

	if len(c.AllowedRawTags) > MaxAllowedRawTags {
		return fmt.Errorf("%w: allowedRawTags (%d entries, max %d)", ErrFieldTooLong, len(c.AllowedRawTags), MaxAllowedRawTags)
	}
	for _, tag := range c.AllowedRawTags {
		if !tagNamePattern.MatchString(tag) {
			return fmt.Errorf("%w: allowedRawTags: %q", ErrInvalidValue, tag)
		}
	}

	for tag, class := range c.Classes {
		if !tagNamePattern.MatchString(tag) {
			return fmt.Errorf("%w: classes: tag %q", ErrInvalidValue, tag)
		}
		if err := validateFieldLength("classes."+tag, class, MaxClassLength); err != nil {
			return err
		}
	}

	if err := c.validateMath(); err != nil {
		return err
	}

	if err := validateFieldLength("document.style", c.Document.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.lang", c.Document.Lang, MaxLangLength); err != nil {
		return err
	}

	if err := c.validateTOC(); err != nil {
		return err
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if _, err := parseDuration("pdf.timeout", c.PDF.Timeout); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	return nil
}

func (c *Config) validateMath() error {
	switch c.Math.Renderer {
	case "", MathMathML, MathUnicode, MathNone:
	default:
		return fmt.Errorf("%w: math.renderer: %q (must be %s, %s, or %s)",
			ErrInvalidValue, c.Math.Renderer, MathMathML, MathUnicode, MathNone)
	}
	if _, err := parseDuration("math.cacheTtl", c.Math.CacheTTL); err != nil {
		return err
	}
	for name, expansion := range c.Math.Macros {
		if !macroPattern.MatchString(name) {
			return fmt.Errorf("%w: math.macros: name %q", ErrInvalidValue, name)
		}
		if err := validateFieldLength("math.macros."+name, expansion, MaxMacroLength); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateTOC() error {
	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}
	if !c.TOC.Enabled {
		return nil
	}
	if c.TOC.MinDepth != 0 && (c.TOC.MinDepth < 1 || c.TOC.MinDepth > 6) {
		return fmt.Errorf("%w: toc.minDepth: must be between 1 and 6, got %d", ErrInvalidValue, c.TOC.MinDepth)
	}
	if c.TOC.MaxDepth != 0 && (c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 6) {
		return fmt.Errorf("%w: toc.maxDepth: must be between 1 and 6, got %d", ErrInvalidValue, c.TOC.MaxDepth)
	}
	if c.TOC.MinDepth > c.TOCMaxDepth() {
		return fmt.Errorf("%w: toc.minDepth (%d) exceeds toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOCMaxDepth())
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// parseDuration parses an optional non-negative Go duration.
func parseDuration(fieldName, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %s: %q is not a positive duration", ErrInvalidValue, fieldName, value)
	}
	return d, nil
}

// CacheTTL returns the math cache lifetime, zero when caching is off.
// Call after Validate.
func (c *Config) CacheTTL() time.Duration {
	d, _ := parseDuration("math.cacheTtl", c.Math.CacheTTL)
	return d
}

// PDFTimeout returns the PDF export timeout. Call after Validate.
func (c *Config) PDFTimeout() time.Duration {
	d, _ := parseDuration("pdf.timeout", c.PDF.Timeout)
	if d == 0 {
		return defaultPDFTimeout
	}
	return d
}

// TOCMinDepth returns the shallowest heading level in the outline.
func (c *Config) TOCMinDepth() int {
	if c.TOC.MinDepth == 0 {
		return 1
	}
	return c.TOC.MinDepth
}

// TOCMaxDepth returns the deepest heading level in the outline.
func (c *Config) TOCMaxDepth() int {
	if c.TOC.MaxDepth == 0 {
		return defaultTOCMaxDepth
	}
	return c.TOC.MaxDepth
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineRegex,
		Math:   MathConfig{Renderer: MathMathML},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration over the defaults and validates it.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/bookfmt/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, defaultConfigDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
