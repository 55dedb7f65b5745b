package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"
)

// unsetValue removes a property set by a less specific section.
const unsetValue = "unset"

// EditorConfig returns the .editorconfig properties that apply to
// sourcePath. Files are looked up from the directory of sourcePath upwards
// until one declares root = true; nearer files win.
func EditorConfig(sourcePath string) (map[Key]string, error) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", sourcePath, err)
	}
	def, err := editorconfig.GetDefinitionForFilename(abs)
	if err != nil {
		return nil, fmt.Errorf("reading .editorconfig for %s: %w", sourcePath, err)
	}

	values := make(map[Key]string, len(def.Raw))
	for k, v := range def.Raw {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == unsetValue {
			continue
		}
		values[Key(strings.ToLower(k))] = v
	}

	// indent_size = tab defers to tab_width.
	if values[IndentSize] == "tab" {
		if w, ok := values["tab_width"]; ok {
			values[IndentSize] = w
		} else {
			delete(values, IndentSize)
		}
	}
	return values, nil
}

// ResolveProperties returns the properties for one source file: the
// formatter settings of cfg, overridden by .editorconfig when enabled.
func ResolveProperties(cfg *Config, sourcePath string) (Properties, error) {
	props := FromConfig(cfg)
	if cfg.Formatter.EditorConfig && sourcePath != "" {
		overrides, err := EditorConfig(sourcePath)
		if err != nil {
			return Properties{}, err
		}
		props = props.With(overrides)
	}
	if err := props.Validate(); err != nil {
		return Properties{}, fmt.Errorf("resolving properties for %s: %w", sourcePath, err)
	}
	return props, nil
}
