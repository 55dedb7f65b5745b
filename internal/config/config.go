// Package config defines the configuration types and defaults for kantfmt
// and resolves them into the property bag handed to formatting rules.
package config

import "fmt"

// Config is the top-level configuration.
type Config struct {
	Formatter FormatterConfig `yaml:"formatter"`

	// Rules enables or disables rules by id. Rules not listed are enabled.
	Rules map[string]bool `yaml:"rules"`
}

// FormatterConfig holds all formatter settings.
type FormatterConfig struct {
	IndentStyle string `yaml:"indent_style"`
	IndentSize  int    `yaml:"indent_size"`
	// MaxLineLength of 0 disables every line length check.
	MaxLineLength                int  `yaml:"max_line_length"`
	AllowTrailingCommaOnCallSite bool `yaml:"allow_trailing_comma_on_call_site"`
	// EditorConfig enables .editorconfig lookup next to each source file.
	EditorConfig bool `yaml:"editorconfig"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			IndentStyle:                  "space",
			IndentSize:                   4,
			MaxLineLength:                120,
			AllowTrailingCommaOnCallSite: true,
			EditorConfig:                 true,
		},
	}
}

// RuleEnabled reports whether the rule with the given id should run.
func (c *Config) RuleEnabled(id string) bool {
	enabled, ok := c.Rules[id]
	return !ok || enabled
}

// Validate checks the formatter settings.
func (c *Config) Validate() error {
	f := c.Formatter
	if f.IndentStyle != "space" && f.IndentStyle != "tab" {
		return fmt.Errorf("formatter.indent_style: want space or tab, got %q", f.IndentStyle)
	}
	if f.IndentSize <= 0 {
		return fmt.Errorf("formatter.indent_size: must be positive, got %d", f.IndentSize)
	}
	if f.MaxLineLength < 0 {
		return fmt.Errorf("formatter.max_line_length: must not be negative, got %d", f.MaxLineLength)
	}
	return nil
}
