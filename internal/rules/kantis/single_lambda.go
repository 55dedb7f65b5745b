package kantis

import (
	"github.com/donaldgifford/kantfmt/internal/classify"
	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/formatter"
	"github.com/donaldgifford/kantfmt/internal/layout"
	"github.com/donaldgifford/kantfmt/internal/syntax"
)

const (
	msgLambdaStart = "Single lambda argument should begin on the same line as the opening parenthesis"
	msgLambdaEnd   = "Single lambda argument should terminate on the same line as the closing parenthesis"
)

// SingleLambda hugs a lambda that is the only argument of a call with the
// surrounding parentheses.
type SingleLambda struct {
	base
	indent layout.IndentConfig
}

// NewSingleLambda returns the single lambda argument rule.
func NewSingleLambda() formatter.Rule {
	return &SingleLambda{
		base: base{
			name:  "single-lambda-argument",
			keys:  indentKeys,
			kinds: []syntax.Kind{syntax.ArgumentList},
		},
		indent: layout.DefaultIndent,
	}
}

// BeforeFirstNode reads the indentation settings.
func (r *SingleLambda) BeforeFirstNode(props config.Properties) error {
	indent, err := indentConfig(props)
	if err != nil {
		return err
	}
	r.indent = indent
	return nil
}

// BeforeVisitChildNodes removes anything between the parentheses and the
// lambda, keeping end-of-line comments.
func (r *SingleLambda) BeforeVisitChildNodes(t *syntax.Tree, id syntax.NodeID, autoCorrect bool, emit formatter.EmitFunc) error {
	if !classify.IsSingleLambdaArgument(t, id) {
		return nil
	}
	lparen := classify.FirstChildOfKind(t, id, syntax.LParen)
	rparen := classify.LastChildOfKind(t, id, syntax.RParen)
	if lparen == syntax.NoNode || rparen == syntax.NoNode {
		return nil
	}
	arg := classify.FirstChildOfKind(t, id, syntax.ValueArgument)

	leading := between(t, lparen, arg)
	trailing := between(t, arg, rparen)
	shift := r.indent.Columns(layout.LineIndent(t, arg)) - r.indent.Columns(layout.LineIndent(t, lparen))

	if len(leading) > 0 {
		emit(t.StartOffset(arg), msgLambdaStart, true)
	}
	if len(trailing) > 0 {
		emit(t.EndOffset(arg), msgLambdaEnd, true)
	}
	if !autoCorrect {
		return nil
	}

	if len(leading) > 0 {
		if err := r.fixStart(t, arg, leading, shift); err != nil {
			return err
		}
	}
	if len(trailing) > 0 {
		return r.fixEnd(t, id, trailing)
	}
	return nil
}

func (r *SingleLambda) fixStart(t *syntax.Tree, arg syntax.NodeID, leading []syntax.NodeID, shift int) error {
	brace := openingBrace(t, arg)
	if brace == syntax.NoNode {
		return inconsistent(t, arg, `lambda without "{"`)
	}
	comments, err := detachAll(t, leading)
	if err != nil {
		return err
	}
	if err := layout.Outdent(t, arg, shift, r.indent); err != nil {
		return err
	}

	brk := "\n" + layout.LineIndent(t, brace) + r.indent.Unit()
	anchor, lead := brace, " "
	for _, c := range comments {
		if err := layout.PlaceComment(t, c, anchor, lead, brk); err != nil {
			return err
		}
		anchor, lead = c, brk
	}
	return nil
}

func (r *SingleLambda) fixEnd(t *syntax.Tree, list syntax.NodeID, trailing []syntax.NodeID) error {
	comments, err := detachAll(t, trailing)
	if err != nil {
		return err
	}

	brk := "\n" + layout.LineIndent(t, list)
	anchor, lead := list, " "
	for _, c := range comments {
		if err := layout.PlaceComment(t, c, anchor, lead, brk); err != nil {
			return err
		}
		anchor, lead = c, brk
	}
	return nil
}

// between returns the siblings strictly between from and to.
func between(t *syntax.Tree, from, to syntax.NodeID) []syntax.NodeID {
	var ids []syntax.NodeID
	for id := t.NextSibling(from, nil); id != syntax.NoNode && id != to; id = t.NextSibling(id, nil) {
		ids = append(ids, id)
	}
	return ids
}

// detachAll removes ids from the tree and returns the end-of-line comments
// among them.
func detachAll(t *syntax.Tree, ids []syntax.NodeID) ([]syntax.NodeID, error) {
	var comments []syntax.NodeID
	for _, id := range ids {
		if classify.IsEOLComment(t, id) {
			comments = append(comments, id)
		}
		if err := t.Detach(id); err != nil {
			return nil, err
		}
	}
	return comments, nil
}

// openingBrace descends along first children to the "{" of a lambda.
func openingBrace(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	for id != syntax.NoNode && t.Kind(id) != syntax.LBrace {
		id = t.FirstChild(id)
	}
	return id
}
