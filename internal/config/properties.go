package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Key names a property read by rules. The names follow .editorconfig.
type Key string

// Known properties.
const (
	IndentStyle             Key = "indent_style"
	IndentSize              Key = "indent_size"
	MaxLineLength           Key = "max_line_length"
	TrailingCommaOnCallSite Key = "ij_kotlin_allow_trailing_comma_on_call_site"
)

// KnownKeys lists every property kantfmt understands.
var KnownKeys = []Key{IndentStyle, IndentSize, MaxLineLength, TrailingCommaOnCallSite}

// ErrUndeclaredProperty is returned when a rule reads a property it did not
// declare.
var ErrUndeclaredProperty = errors.New("undeclared property")

// Off is the property value that disables a numeric limit.
const Off = "off"

// Properties is an immutable bag of property values. The zero value is
// empty.
type Properties struct {
	values map[Key]string
	// declared restricts readable keys; nil allows every key.
	declared map[Key]bool
}

// NewProperties returns properties holding a copy of values.
func NewProperties(values map[Key]string) Properties {
	return Properties{values: maps.Clone(values)}
}

// FromConfig returns the properties described by the formatter settings.
func FromConfig(cfg *Config) Properties {
	f := cfg.Formatter
	maxLineLength := Off
	if f.MaxLineLength > 0 {
		maxLineLength = strconv.Itoa(f.MaxLineLength)
	}
	return NewProperties(map[Key]string{
		IndentStyle:             f.IndentStyle,
		IndentSize:              strconv.Itoa(f.IndentSize),
		MaxLineLength:           maxLineLength,
		TrailingCommaOnCallSite: strconv.FormatBool(f.AllowTrailingCommaOnCallSite),
	})
}

// With returns a copy of p where overrides replace existing values.
func (p Properties) With(overrides map[Key]string) Properties {
	values := maps.Clone(p.values)
	if values == nil {
		values = make(map[Key]string, len(overrides))
	}
	maps.Copy(values, overrides)
	return Properties{values: values, declared: p.declared}
}

// Only returns a view of p in which only keys can be read.
func (p Properties) Only(keys ...Key) Properties {
	declared := make(map[Key]bool, len(keys))
	for _, k := range keys {
		if p.declared == nil || p.declared[k] {
			declared[k] = true
		}
	}
	return Properties{values: p.values, declared: declared}
}

// Keys returns the readable keys that have a value, sorted.
func (p Properties) Keys() []Key {
	var keys []Key
	for k := range p.values {
		if p.declared == nil || p.declared[k] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// String returns the raw value of key.
func (p Properties) String(key Key) (string, error) {
	if p.declared != nil && !p.declared[key] {
		return "", fmt.Errorf("%w: %s", ErrUndeclaredProperty, key)
	}
	v, ok := p.values[key]
	if !ok {
		return "", fmt.Errorf("property %s is not set", key)
	}
	return v, nil
}

// Int returns key as an integer. The value "off" reads as 0.
func (p Properties) Int(key Key) (int, error) {
	v, err := p.String(key)
	if err != nil {
		return 0, err
	}
	if strings.EqualFold(v, Off) {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("property %s: want a non-negative integer or %q, got %q", key, Off, v)
	}
	return n, nil
}

// Bool returns key as a boolean.
func (p Properties) Bool(key Key) (bool, error) {
	v, err := p.String(key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return false, fmt.Errorf("property %s: want true or false, got %q", key, v)
	}
	return b, nil
}

// Validate checks that every known property holds a usable value.
func (p Properties) Validate() error {
	style, err := p.String(IndentStyle)
	if err != nil {
		return err
	}
	if style != "space" && style != "tab" {
		return fmt.Errorf("property %s: want space or tab, got %q", IndentStyle, style)
	}
	size, err := p.Int(IndentSize)
	if err != nil {
		return err
	}
	if size == 0 {
		return fmt.Errorf("property %s: must be positive", IndentSize)
	}
	if _, err := p.Int(MaxLineLength); err != nil {
		return err
	}
	if _, err := p.Bool(TrailingCommaOnCallSite); err != nil {
		return err
	}
	return nil
}
