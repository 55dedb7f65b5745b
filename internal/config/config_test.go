package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	f := cfg.Formatter
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"IndentStyle", f.IndentStyle, "space"},
		{"IndentSize", f.IndentSize, 4},
		{"MaxLineLength", f.MaxLineLength, 120},
		{"AllowTrailingCommaOnCallSite", f.AllowTrailingCommaOnCallSite, true},
		{"EditorConfig", f.EditorConfig, true},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")

	yaml := `formatter:
  max_line_length: 100
  allow_trailing_comma_on_call_site: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Formatter.MaxLineLength != 100 {
		t.Errorf("MaxLineLength: got %d, want 100", cfg.Formatter.MaxLineLength)
	}
	if cfg.Formatter.AllowTrailingCommaOnCallSite {
		t.Error("AllowTrailingCommaOnCallSite: got true, want false")
	}

	// Verify unspecified fields retain defaults.
	if cfg.Formatter.IndentSize != 4 {
		t.Errorf("IndentSize: got %d, want 4 (default)", cfg.Formatter.IndentSize)
	}
	if !cfg.Formatter.EditorConfig {
		t.Error("EditorConfig: got false, want true (default)")
	}
}

func TestLoadNoConfigReturnsDefaults(t *testing.T) {
	// Use an empty temp dir so no config file is discovered.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	if cfg.Formatter != want.Formatter {
		t.Errorf("expected default config, got %+v", cfg.Formatter)
	}
}

func TestDiscoverPriority(t *testing.T) {
	dir := t.TempDir()

	content := []byte("formatter:\n  indent_size: 4\n")

	names := []string{"kantfmt.yml", "kantfmt.yaml", ".kantfmt.yml", ".kantfmt.yaml"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Each removal exposes the next file in search order.
	for i, name := range names {
		got := Discover(dir)
		want := filepath.Join(dir, name)
		if got != want {
			t.Errorf("step %d: Discover = %q, want %q", i, got, want)
		}
		if err := os.Remove(want); err != nil {
			t.Fatal(err)
		}
	}

	if got := Discover(dir); got != "" {
		t.Errorf("Discover in empty dir: got %q, want empty string", got)
	}
}

func TestLoadDiscovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".kantfmt.yaml")

	yaml := `formatter:
  indent_style: tab
rules:
  kantis:single-lambda-argument: false
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Formatter.IndentStyle != "tab" {
		t.Errorf("IndentStyle: got %q, want tab", cfg.Formatter.IndentStyle)
	}
	if cfg.RuleEnabled("kantis:single-lambda-argument") {
		t.Error("kantis:single-lambda-argument: got enabled, want disabled")
	}
	if !cfg.RuleEnabled("kantis:multiline-supertype-list-must-terminate-with-new-line") {
		t.Error("unlisted rule: got disabled, want enabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "{{{{not valid yaml"},
		{"indent style", "formatter:\n  indent_style: both\n"},
		{"indent size", "formatter:\n  indent_size: 0\n"},
		{"max line length", "formatter:\n  max_line_length: -1\n"},
		{"unknown key", "formatter:\n  indent_width: 2\n"},
		{"rules not a map", "rules: [a, b]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing explicit path, got %v", err)
	}
}

func TestLoadDirIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "kantfmt.yml"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".kantfmt.yml"), []byte("formatter:\n  indent_size: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Formatter.IndentSize != 2 {
		t.Errorf("IndentSize: got %d, want 2", cfg.Formatter.IndentSize)
	}
}

func TestDecodeReportsField(t *testing.T) {
	_, err := Decode(strings.NewReader("formatter:\n  indent_style: both\n"))
	if err == nil || !strings.Contains(err.Error(), "formatter.indent_style") {
		t.Errorf("expected indent_style error, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yml")

	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// Empty file should result in all defaults.
	want := DefaultConfig()
	if cfg.Formatter != want.Formatter {
		t.Errorf("expected default config for empty file, got %+v", cfg.Formatter)
	}
}
