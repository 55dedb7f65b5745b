package kantis

import (
	"fmt"

	"github.com/donaldgifford/kantfmt/internal/classify"
	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/formatter"
	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// commaState describes the trailing comma of a list.
type commaState int

const (
	// commaExists: the list is multiline and has a trailing comma.
	commaExists commaState = iota
	// commaMissing: the list is multiline and has no trailing comma.
	commaMissing
	// commaNotExists: the list is single line and has no trailing comma.
	commaNotExists
	// commaRedundant: the list is single line and has a trailing comma.
	commaRedundant
)

func (s commaState) String() string {
	switch s {
	case commaExists:
		return "EXISTS"
	case commaMissing:
		return "MISSING"
	case commaNotExists:
		return "NOT_EXISTS"
	case commaRedundant:
		return "REDUNDANT"
	}
	return fmt.Sprintf("commaState(%d)", int(s))
}

// trailingCommaState classifies a list. A single lambda argument never
// needs a trailing comma.
func trailingCommaState(multiline, present, singleLambda bool) commaState {
	switch {
	case multiline && present:
		return commaExists
	case multiline && !singleLambda:
		return commaMissing
	case present:
		return commaRedundant
	default:
		return commaNotExists
	}
}

type commaAction int

const (
	keepComma commaAction = iota
	insertComma
	removeComma
)

// commaActionFor decides what to do with the trailing comma of a list in
// state s when trailing commas are allowed or not.
func commaActionFor(s commaState, allowed bool) commaAction {
	switch s {
	case commaExists:
		if !allowed {
			return removeComma
		}
	case commaMissing:
		if allowed {
			return insertComma
		}
	case commaRedundant:
		return removeComma
	}
	return keepComma
}

// TrailingComma enforces consistent trailing commas on call sites:
// collection literals, indices, type arguments and value arguments.
type TrailingComma struct {
	base
	allowed bool
}

// NewTrailingComma returns the trailing comma rule.
func NewTrailingComma() formatter.Rule {
	return &TrailingComma{
		base: base{
			name:  "adjusted-trailing-comma-on-call-site",
			keys:  []config.Key{config.TrailingCommaOnCallSite},
			kinds: []syntax.Kind{syntax.CollectionLiteral, syntax.IndexList, syntax.TypeArgumentList, syntax.ArgumentList},
		},
		allowed: true,
	}
}

// BeforeFirstNode reads the trailing comma policy.
func (r *TrailingComma) BeforeFirstNode(props config.Properties) error {
	allowed, err := props.Bool(config.TrailingCommaOnCallSite)
	if err != nil {
		return err
	}
	r.allowed = allowed
	return nil
}

// BeforeVisitChildNodes checks the trailing comma before the closing
// delimiter of a list.
func (r *TrailingComma) BeforeVisitChildNodes(t *syntax.Tree, id syntax.NodeID, autoCorrect bool, emit formatter.EmitFunc) error {
	var closing syntax.NodeID
	switch t.Kind(id) {
	case syntax.CollectionLiteral, syntax.IndexList:
		closing = classify.LastChildOfKind(t, id, syntax.RBracket)
		if closing == syntax.NoNode {
			return inconsistent(t, id, `missing "]"`)
		}
	case syntax.TypeArgumentList:
		closing = classify.FirstChildOfKind(t, id, syntax.RAngle)
		if closing == syntax.NoNode {
			return inconsistent(t, id, `missing ">"`)
		}
	case syntax.ArgumentList:
		if t.Kind(t.Parent(id)) == syntax.FunctionLiteral {
			return nil
		}
		closing = classify.LastChildOfKind(t, id, syntax.RParen)
		if closing == syntax.NoNode {
			return nil
		}
	default:
		return nil
	}
	return r.check(t, id, closing, autoCorrect, emit)
}

func (r *TrailingComma) check(t *syntax.Tree, list, closing syntax.NodeID, autoCorrect bool, emit formatter.EmitFunc) error {
	last := classify.PrevCodeLeaf(t, closing)
	if last == syntax.NoNode || (t.Parent(last) == list && t.FirstChild(list) == last) {
		// Nothing but the opening delimiter before the closing one.
		return nil
	}
	present := t.Kind(last) == syntax.Comma

	state := trailingCommaState(
		classify.IsMultilineRun(t, list),
		present,
		classify.IsSingleLambdaArgument(t, list),
	)
	allowed := r.allowed && classify.AllowsTrailingComma(t.Kind(list))

	switch commaActionFor(state, allowed) {
	case removeComma:
		emit(t.StartOffset(last), fmt.Sprintf("Unnecessary trailing comma before %q", t.Text(closing)), true)
		if !autoCorrect {
			return nil
		}
		parent := t.Parent(last)
		if err := t.Detach(last); err != nil {
			return err
		}
		t.MergeAdjacentWhitespace(parent)

	case insertComma:
		emit(t.EndOffset(last), fmt.Sprintf("Missing trailing comma before %q", t.Text(closing)), true)
		if !autoCorrect {
			return nil
		}
		element := classify.PrevCodeSibling(t, closing)
		if element == syntax.NoNode {
			return inconsistent(t, list, "no element before %q", t.Text(closing))
		}
		return t.InsertAfter(element, t.NewLeaf(syntax.Comma, ","))
	}
	return nil
}
