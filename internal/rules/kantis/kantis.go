// Package kantis implements the kantis layout rules for Kotlin syntax
// trees.
package kantis

import (
	"fmt"

	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/layout"
	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// RuleSet is the id prefix shared by every rule of this package.
const RuleSet = "kantis"

// base carries the registration handshake common to all rules.
type base struct {
	name  string
	keys  []config.Key
	kinds []syntax.Kind
}

func (b base) ID() string               { return RuleSet + ":" + b.name }
func (b base) Properties() []config.Key { return b.keys }
func (b base) Kinds() []syntax.Kind     { return b.kinds }

var indentKeys = []config.Key{config.IndentStyle, config.IndentSize}

// defaultMaxLineLength applies until BeforeFirstNode reads the property.
const defaultMaxLineLength = 120

func indentConfig(props config.Properties) (layout.IndentConfig, error) {
	style, err := props.String(config.IndentStyle)
	if err != nil {
		return layout.IndentConfig{}, err
	}
	size, err := props.Int(config.IndentSize)
	if err != nil {
		return layout.IndentConfig{}, err
	}
	return layout.IndentConfig{Style: style, Size: size}, nil
}

// inconsistent reports a tree that lacks a node a rule relies on.
func inconsistent(t *syntax.Tree, id syntax.NodeID, format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d: %s",
		syntax.ErrInconsistentTree, t.Kind(id), t.StartOffset(id), fmt.Sprintf(format, args...))
}
