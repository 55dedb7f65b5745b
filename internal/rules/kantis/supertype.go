package kantis

import (
	"strings"

	"github.com/donaldgifford/kantfmt/internal/classify"
	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/formatter"
	"github.com/donaldgifford/kantfmt/internal/layout"
	"github.com/donaldgifford/kantfmt/internal/syntax"
)

const msgSupertypeEnd = "Multiline super type list must terminate with a new line"

// SupertypeTerminator puts the code following a multiline supertype list,
// usually the class body, on a line of its own.
type SupertypeTerminator struct {
	base
	indent layout.IndentConfig
}

// NewSupertypeTerminator returns the multiline supertype list rule.
func NewSupertypeTerminator() formatter.Rule {
	return &SupertypeTerminator{
		base: base{
			name:  "multiline-supertype-list-must-terminate-with-new-line",
			keys:  indentKeys,
			kinds: []syntax.Kind{syntax.SupertypeList},
		},
		indent: layout.DefaultIndent,
	}
}

// BeforeFirstNode reads the indentation settings.
func (r *SupertypeTerminator) BeforeFirstNode(props config.Properties) error {
	indent, err := indentConfig(props)
	if err != nil {
		return err
	}
	r.indent = indent
	return nil
}

// BeforeVisitChildNodes checks the break after a multiline supertype list.
func (r *SupertypeTerminator) BeforeVisitChildNodes(t *syntax.Tree, id syntax.NodeID, autoCorrect bool, emit formatter.EmitFunc) error {
	if !strings.Contains(t.Text(id), "\n") {
		return nil
	}
	next := classify.NextCodeSibling(t, id)
	if next == syntax.NoNode {
		return nil
	}

	owner := t.Parent(id)
	expected := "\n" + r.indent.Indent(r.indent.Columns(layout.LineIndent(t, owner)))
	if terminated(t, next, expected) {
		return nil
	}

	emit(t.StartOffset(next), msgSupertypeEnd, true)
	if !autoCorrect {
		return nil
	}
	return t.UpsertWhitespaceBefore(next, expected)
}

// terminated reports whether the whitespace before id ends with a line
// break followed by exactly the expected indentation.
func terminated(t *syntax.Tree, id syntax.NodeID, expected string) bool {
	prev := t.PrevLeaf(id, nil)
	if !classify.IsWhitespaceWithNewline(t, prev) {
		return false
	}
	text := t.Text(prev)
	return text[strings.LastIndexByte(text, '\n'):] == expected
}
