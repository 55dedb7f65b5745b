// Package classify recognizes the syntactic roles of syntax tree nodes that
// the formatting rules care about. All functions are pure.
package classify

import (
	"strings"

	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// IsWhitespace reports whether id is a whitespace leaf.
func IsWhitespace(t *syntax.Tree, id syntax.NodeID) bool {
	return t.Kind(id) == syntax.Whitespace
}

// IsWhitespaceWithNewline reports whether id is whitespace holding a line break.
func IsWhitespaceWithNewline(t *syntax.Tree, id syntax.NodeID) bool {
	return IsWhitespace(t, id) && strings.Contains(t.Text(id), "\n")
}

// IsComment reports whether id is any kind of comment.
func IsComment(t *syntax.Tree, id syntax.NodeID) bool {
	switch t.Kind(id) {
	case syntax.EOLComment, syntax.BlockComment, syntax.KDoc:
		return true
	}
	return false
}

// IsEOLComment reports whether id is an end-of-line comment.
func IsEOLComment(t *syntax.Tree, id syntax.NodeID) bool {
	return t.Kind(id) == syntax.EOLComment
}

// IsPartOfComment reports whether id is a comment or lies inside one.
func IsPartOfComment(t *syntax.Tree, id syntax.NodeID) bool {
	for cur := id; cur != syntax.NoNode; cur = t.Parent(cur) {
		if IsComment(t, cur) {
			return true
		}
	}
	return false
}

// IsCodeLeaf reports whether id carries code, i.e. it is neither whitespace
// nor part of a comment.
func IsCodeLeaf(t *syntax.Tree, id syntax.NodeID) bool {
	return !IsWhitespace(t, id) && !IsPartOfComment(t, id)
}

func code(t *syntax.Tree) syntax.Match {
	return func(id syntax.NodeID) bool { return IsCodeLeaf(t, id) }
}

// NextCodeSibling returns the next sibling of id that is not whitespace or
// a comment.
func NextCodeSibling(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	return t.NextSibling(id, code(t))
}

// PrevCodeSibling returns the previous sibling of id that is not whitespace
// or a comment.
func PrevCodeSibling(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	return t.PrevSibling(id, code(t))
}

// NextCodeLeaf returns the next leaf after id that is not whitespace or a
// comment.
func NextCodeLeaf(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	return t.NextLeaf(id, code(t))
}

// PrevCodeLeaf returns the previous leaf before id that is not whitespace or
// a comment.
func PrevCodeLeaf(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	return t.PrevLeaf(id, code(t))
}

// IsMultilineRun reports whether id spans more than one line. An argument
// list counts as multiline only when a line break follows its first
// argument; breaks inside arguments or before the first one do not count.
func IsMultilineRun(t *syntax.Tree, id syntax.NodeID) bool {
	if t.Kind(id) == syntax.ArgumentList {
		arg := FirstChildOfKind(t, id, syntax.ValueArgument)
		if arg == syntax.NoNode {
			return false
		}
		return t.NextSibling(arg, func(n syntax.NodeID) bool { return IsWhitespaceWithNewline(t, n) }) != syntax.NoNode
	}
	return strings.Contains(t.Text(id), "\n")
}

// IsSingleLambdaArgument reports whether the argument list id holds exactly
// one argument and that argument is a lambda.
func IsSingleLambdaArgument(t *syntax.Tree, id syntax.NodeID) bool {
	if t.Kind(id) != syntax.ArgumentList {
		return false
	}
	arg := syntax.NoNode
	for _, c := range t.Children(id) {
		if t.Kind(c) != syntax.ValueArgument {
			continue
		}
		if arg != syntax.NoNode {
			return false
		}
		arg = c
	}
	if arg == syntax.NoNode {
		return false
	}
	lambda := t.FirstChild(arg)
	return t.Kind(lambda) == syntax.LambdaExpression &&
		t.Kind(t.FirstChild(lambda)) == syntax.FunctionLiteral
}

// AllowsTrailingComma reports whether lists of the given kind may carry a
// trailing comma.
func AllowsTrailingComma(kind syntax.Kind) bool {
	switch kind {
	case syntax.CollectionLiteral, syntax.IndexList, syntax.TypeArgumentList, syntax.ArgumentList:
		return true
	}
	return false
}

// IsChainable reports whether nodes of the given kind are expressions that
// may continue over several lines as a single value.
func IsChainable(kind syntax.Kind) bool {
	switch kind {
	case syntax.ArrayAccessExpr,
		syntax.BinaryWithTypeExpr,
		syntax.CallExpression,
		syntax.DotQualifiedExpr,
		syntax.IfExpr,
		syntax.IsExpr,
		syntax.ObjectLiteral,
		syntax.PrefixExpr,
		syntax.PostfixExpr,
		syntax.ReferenceExpr,
		syntax.SafeAccessExpr,
		syntax.TryExpr,
		syntax.WhenExpr:
		return true
	}
	return false
}

// ContainsWhitespaceWithNewline reports whether id has a line break before
// its last leaf, either in whitespace or at the start of a string part.
func ContainsWhitespaceWithNewline(t *syntax.Tree, id syntax.NodeID) bool {
	last := t.LastLeaf(id)
	for leaf := range t.Leaves(id) {
		if leaf == last {
			break
		}
		if IsWhitespaceWithNewline(t, leaf) {
			return true
		}
		if t.Kind(leaf) == syntax.StringPart && strings.HasPrefix(t.Text(leaf), "\n") {
			return true
		}
	}
	return false
}

// IsElvisOperator reports whether id is the operation reference of a "?:"
// expression.
func IsElvisOperator(t *syntax.Tree, id syntax.NodeID) bool {
	return t.Kind(id) == syntax.OperationReference && t.Kind(t.FirstChild(id)) == syntax.Elvis
}

// IsSpreadOperand reports whether id is the operand of a spread argument.
func IsSpreadOperand(t *syntax.Tree, id syntax.NodeID) bool {
	return t.Kind(PrevCodeLeaf(t, id)) == syntax.Mul &&
		t.Kind(t.Parent(id)) == syntax.ValueArgument
}

// IsRightHandSideOfBinary reports whether id is the right operand of a
// binary expression.
func IsRightHandSideOfBinary(t *syntax.Tree, id syntax.NodeID) bool {
	return t.Kind(t.Parent(id)) == syntax.BinaryExpr &&
		t.Kind(PrevCodeSibling(t, id)) == syntax.OperationReference
}

// IsReturnValue reports whether id is the value of a return expression.
func IsReturnValue(t *syntax.Tree, id syntax.NodeID) bool {
	return t.Kind(t.Parent(id)) == syntax.ReturnExpr
}

// FirstChildOfKind returns the first direct child of id with the given kind.
func FirstChildOfKind(t *syntax.Tree, id syntax.NodeID, kind syntax.Kind) syntax.NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == kind {
			return c
		}
	}
	return syntax.NoNode
}

// LastChildOfKind returns the last direct child of id with the given kind.
func LastChildOfKind(t *syntax.Tree, id syntax.NodeID, kind syntax.Kind) syntax.NodeID {
	children := t.Children(id)
	for i := len(children) - 1; i >= 0; i-- {
		if t.Kind(children[i]) == kind {
			return children[i]
		}
	}
	return syntax.NoNode
}
