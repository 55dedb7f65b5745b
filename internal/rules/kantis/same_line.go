package kantis

import (
	"github.com/donaldgifford/kantfmt/internal/classify"
	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/formatter"
	"github.com/donaldgifford/kantfmt/internal/layout"
	"github.com/donaldgifford/kantfmt/internal/syntax"
)

const (
	msgFunctionBody = "Right-hand side of function expression should start on same line, unless max line length would be exceeded"
	msgAssignment   = "Value in assignment should start on same line as assignment"
)

// SameLine pulls the value of an assignment or function expression body up
// onto the line of its "=" or operator, unless the joined line would exceed
// the maximum line length.
type SameLine struct {
	base
	indent        layout.IndentConfig
	maxLineLength int
}

// NewSameLine returns the same-line continuation rule.
func NewSameLine() formatter.Rule {
	kinds := []syntax.Kind{syntax.Eq, syntax.BinaryExpr}
	for _, k := range syntax.Kinds() {
		if classify.IsChainable(k) {
			kinds = append(kinds, k)
		}
	}
	return &SameLine{
		base: base{
			name:  "value-in-assignment-starts-on-same-line",
			keys:  append(append([]config.Key(nil), indentKeys...), config.MaxLineLength),
			kinds: kinds,
		},
		indent:        layout.DefaultIndent,
		maxLineLength: defaultMaxLineLength,
	}
}

// BeforeFirstNode reads the indentation and line length settings.
func (r *SameLine) BeforeFirstNode(props config.Properties) error {
	indent, err := indentConfig(props)
	if err != nil {
		return err
	}
	maxLineLength, err := props.Int(config.MaxLineLength)
	if err != nil {
		return err
	}
	r.indent = indent
	r.maxLineLength = maxLineLength
	return nil
}

// BeforeVisitChildNodes checks function expression bodies at their "=" and
// assigned values at their top-level expression.
func (r *SameLine) BeforeVisitChildNodes(t *syntax.Tree, id syntax.NodeID, autoCorrect bool, emit formatter.EmitFunc) error {
	kind := t.Kind(id)
	switch {
	case kind == syntax.Eq:
		if t.Kind(t.Parent(id)) != syntax.Fun {
			return nil
		}
		value := classify.NextCodeSibling(t, id)
		if value == syntax.NoNode {
			return nil
		}
		return r.join(t, id, value, msgFunctionBody, autoCorrect, emit)

	case isTopLevelValue(t, id):
		if classify.IsReturnValue(t, id) || !classify.ContainsWhitespaceWithNewline(t, id) {
			return nil
		}
		trigger := classify.PrevCodeSibling(t, id)
		if !isAssignmentTrigger(t, trigger) {
			return nil
		}
		return r.join(t, trigger, id, msgAssignment, autoCorrect, emit)
	}
	return nil
}

// isTopLevelValue reports whether id is the outermost expression of a
// chain, or the right operand of a binary expression.
func isTopLevelValue(t *syntax.Tree, id syntax.NodeID) bool {
	kind := t.Kind(id)
	parent := t.Kind(t.Parent(id))
	if classify.IsChainable(kind) && !classify.IsSpreadOperand(t, id) &&
		(!classify.IsChainable(parent) || classify.IsRightHandSideOfBinary(t, id)) {
		return true
	}
	return kind == syntax.BinaryExpr && parent != syntax.BinaryExpr
}

// isAssignmentTrigger reports whether trigger puts the node after it in a
// value position. Function expression bodies are handled at their "=".
func isAssignmentTrigger(t *syntax.Tree, trigger syntax.NodeID) bool {
	switch t.Kind(trigger) {
	case syntax.Eq:
		return t.Kind(t.Parent(trigger)) != syntax.Fun
	case syntax.OperationReference:
		return !classify.IsElvisOperator(t, trigger)
	}
	return false
}

func (r *SameLine) join(t *syntax.Tree, trigger, value syntax.NodeID, message string, autoCorrect bool, emit formatter.EmitFunc) error {
	run, ok := breakRun(t, trigger, value)
	if !ok {
		return nil
	}
	if !layout.Fits(layout.JoinedWidth(t, run[0], value, r.indent), r.maxLineLength) {
		return nil
	}

	emit(t.StartOffset(value), message, true)
	if !autoCorrect {
		return nil
	}
	return layout.JoinLine(t, run, value, r.maxLineLength, r.indent)
}

// breakRun collects the siblings strictly between trigger and value. The
// run qualifies when it holds only whitespace and end-of-line comments and
// at least one line break.
func breakRun(t *syntax.Tree, trigger, value syntax.NodeID) ([]syntax.NodeID, bool) {
	var run []syntax.NodeID
	hasBreak := false
	for id := t.NextSibling(trigger, nil); id != value; id = t.NextSibling(id, nil) {
		switch {
		case id == syntax.NoNode:
			return nil, false
		case classify.IsWhitespace(t, id):
			hasBreak = hasBreak || classify.IsWhitespaceWithNewline(t, id)
		case classify.IsEOLComment(t, id):
		default:
			return nil, false
		}
		run = append(run, id)
	}
	return run, hasBreak
}
