package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Engine != EngineRegex {
		t.Errorf("Engine = %q, want %q", cfg.Engine, EngineRegex)
	}
	if cfg.Math.Renderer != MathMathML {
		t.Errorf("Math.Renderer = %q, want %q", cfg.Math.Renderer, MathMathML)
	}
	if cfg.Document.Standalone {
		t.Error("Document.Standalone = true, want false")
	}
	if cfg.PDF.Enabled {
		t.Error("PDF.Enabled = true, want false")
	}
	if cfg.AllowedRawTags != nil {
		t.Errorf("AllowedRawTags = %v, want nil", cfg.AllowedRawTags)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "goldmark engine is valid",
			modify: func(c *Config) { c.Engine = EngineGoldmark },
		},
		{
			name:    "unknown engine",
			modify:  func(c *Config) { c.Engine = "pandoc" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "base URL too long",
			modify:  func(c *Config) { c.Images.BaseURL = "https://" + strings.Repeat("a", MaxURLLength) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:   "allowed tags are valid",
			modify: func(c *Config) { c.AllowedRawTags = []string{"div", "h2", "figure"} },
		},
		{
			name:    "allowed tag with attribute syntax",
			modify:  func(c *Config) { c.AllowedRawTags = []string{"div class"} },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "uppercase allowed tag",
			modify:  func(c *Config) { c.AllowedRawTags = []string{"DIV"} },
			wantErr: ErrInvalidValue,
		},
		{
			name: "too many allowed tags",
			modify: func(c *Config) {
				c.AllowedRawTags = make([]string, MaxAllowedRawTags+1)
				for i := range c.AllowedRawTags {
					c.AllowedRawTags[i] = "div"
				}
			},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "class map with bad tag",
			modify:  func(c *Config) { c.Classes = map[string]string{"<p>": "x"} },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "class list too long",
			modify:  func(c *Config) { c.Classes = map[string]string{"p": strings.Repeat("x ", MaxClassLength)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:   "unicode math renderer",
			modify: func(c *Config) { c.Math.Renderer = MathUnicode },
		},
		{
			name:    "unknown math renderer",
			modify:  func(c *Config) { c.Math.Renderer = "katex" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "cache TTL not a duration",
			modify:  func(c *Config) { c.Math.CacheTTL = "ten minutes" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative cache TTL",
			modify:  func(c *Config) { c.Math.CacheTTL = "-1m" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "macro is valid",
			modify: func(c *Config) { c.Math.Macros = map[string]string{`\R`: `\mathbb{R}`} },
		},
		{
			name:    "macro without backslash",
			modify:  func(c *Config) { c.Math.Macros = map[string]string{"R": `\mathbb{R}`} },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "title too long",
			modify:  func(c *Config) { c.Document.Title = strings.Repeat("t", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "PDF timeout not a duration",
			modify:  func(c *Config) { c.PDF.Timeout = "soon" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative workers",
			modify:  func(c *Config) { c.Workers = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "too many workers",
			modify:  func(c *Config) { c.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_TOC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		toc     TOCConfig
		wantErr bool
	}{
		{"disabled ignores depths", TOCConfig{MinDepth: 9, MaxDepth: 9}, false},
		{"enabled with defaults", TOCConfig{Enabled: true}, false},
		{"enabled with range", TOCConfig{Enabled: true, MinDepth: 2, MaxDepth: 4}, false},
		{"max depth out of range", TOCConfig{Enabled: true, MaxDepth: 7}, true},
		{"min depth out of range", TOCConfig{Enabled: true, MinDepth: -1}, true},
		{"min above max", TOCConfig{Enabled: true, MinDepth: 4, MaxDepth: 2}, true},
		{"min above default max", TOCConfig{Enabled: true, MinDepth: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.TOC = tt.toc
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Validate() = %v, want ErrInvalidValue", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestConfig_Accessors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if got := cfg.PDFTimeout(); got != defaultPDFTimeout {
		t.Errorf("PDFTimeout() = %v, want %v", got, defaultPDFTimeout)
	}
	if got := cfg.CacheTTL(); got != 0 {
		t.Errorf("CacheTTL() = %v, want 0", got)
	}
	if got := cfg.TOCMinDepth(); got != 1 {
		t.Errorf("TOCMinDepth() = %d, want 1", got)
	}
	if got := cfg.TOCMaxDepth(); got != defaultTOCMaxDepth {
		t.Errorf("TOCMaxDepth() = %d, want %d", got, defaultTOCMaxDepth)
	}

	cfg.PDF.Timeout = "90s"
	cfg.Math.CacheTTL = "10m"
	cfg.TOC.MinDepth = 2
	cfg.TOC.MaxDepth = 5
	if got := cfg.PDFTimeout(); got != 90*time.Second {
		t.Errorf("PDFTimeout() = %v, want 90s", got)
	}
	if got := cfg.CacheTTL(); got != 10*time.Minute {
		t.Errorf("CacheTTL() = %v, want 10m", got)
	}
	if got := cfg.TOCMinDepth(); got != 2 {
		t.Errorf("TOCMinDepth() = %d, want 2", got)
	}
	if got := cfg.TOCMaxDepth(); got != 5 {
		t.Errorf("TOCMaxDepth() = %d, want 5", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, `engine: goldmark
images:
  baseUrl: "https://cdn.example.com/book/"
  maxHeight: "320px"
allowedRawTags: [div, figure]
classes:
  p: "prose"
math:
  renderer: unicode
  cacheTtl: "5m"
  macros:
    \R: \mathbb{R}
document:
  standalone: true
  title: "Algebra"
toc:
  enabled: true
  maxDepth: 2
pdf:
  enabled: true
  timeout: "1m"
workers: 4
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Engine != EngineGoldmark {
			t.Errorf("Engine = %q, want %q", cfg.Engine, EngineGoldmark)
		}
		if cfg.Images.BaseURL != "https://cdn.example.com/book/" {
			t.Errorf("Images.BaseURL = %q", cfg.Images.BaseURL)
		}
		if cfg.Images.MaxHeight != "320px" {
			t.Errorf("Images.MaxHeight = %q, want 320px", cfg.Images.MaxHeight)
		}
		if len(cfg.AllowedRawTags) != 2 || cfg.AllowedRawTags[1] != "figure" {
			t.Errorf("AllowedRawTags = %v, want [div figure]", cfg.AllowedRawTags)
		}
		if cfg.Classes["p"] != "prose" {
			t.Errorf("Classes[p] = %q, want prose", cfg.Classes["p"])
		}
		if cfg.Math.Renderer != MathUnicode {
			t.Errorf("Math.Renderer = %q, want unicode", cfg.Math.Renderer)
		}
		if cfg.Math.Macros[`\R`] != `\mathbb{R}` {
			t.Errorf("Math.Macros = %v", cfg.Math.Macros)
		}
		if cfg.CacheTTL() != 5*time.Minute {
			t.Errorf("CacheTTL() = %v, want 5m", cfg.CacheTTL())
		}
		if !cfg.Document.Standalone || cfg.Document.Title != "Algebra" {
			t.Errorf("Document = %+v", cfg.Document)
		}
		if !cfg.TOC.Enabled || cfg.TOCMaxDepth() != 2 {
			t.Errorf("TOC = %+v", cfg.TOC)
		}
		if !cfg.PDF.Enabled || cfg.PDFTimeout() != time.Minute {
			t.Errorf("PDF = %+v", cfg.PDF)
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Workers)
		}
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, "headingIds: true\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.HeadingIDs {
			t.Error("HeadingIDs = false, want true")
		}
		if cfg.Engine != EngineRegex {
			t.Errorf("Engine = %q, want default %q", cfg.Engine, EngineRegex)
		}
		if cfg.Math.Renderer != MathMathML {
			t.Errorf("Math.Renderer = %q, want default %q", cfg.Math.Renderer, MathMathML)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "engine: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, "engine: regex\nunknownField: \"should fail\"\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("empty file returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value is reported after parsing", func(t *testing.T) {
		path := writeConfig(t, "math:\n  renderer: katex\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		path := writeConfig(t, "document:\n  title: \""+strings.Repeat("x", MaxTitleLength+1)+"\"\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yml"), []byte("engine: goldmark\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Engine != EngineGoldmark {
			t.Errorf("Engine = %q, want %q", cfg.Engine, EngineGoldmark)
		}
	})

	t.Run("unknown config name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing.yaml") || !strings.Contains(err.Error(), "missing.yml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	t.Run("rejects oversized input", func(t *testing.T) {
		t.Parallel()

		data := []byte("title: \"" + strings.Repeat("x", MaxInputSize) + "\"\n")
		err := decodeStrict(data, &DocumentConfig{})
		if !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		if err := decodeStrict(nil, &DocumentConfig{}); !errors.Is(err, ErrEmptyData) {
			t.Errorf("error = %v, want ErrEmptyData", err)
		}
	})
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Document.Title = "Geometry"
	cfg.TOC.Enabled = true

	out, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), "title: Geometry") {
		t.Errorf("output missing title:\n%s", out)
	}

	back, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse() error = %v\n%s", err, out)
	}
	if back.Document.Title != "Geometry" || !back.TOC.Enabled {
		t.Errorf("round trip lost fields: %+v", back)
	}
}
