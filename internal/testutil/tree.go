package testutil

import (
	"testing"

	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// N declares a composite node.
func N(kind syntax.Kind, children ...syntax.Spec) syntax.Spec {
	return syntax.Spec{Kind: kind, Children: children}
}

// L declares a leaf.
func L(kind syntax.Kind, text string) syntax.Spec {
	return syntax.Spec{Kind: kind, Text: text, IsLeaf: true}
}

// Ws declares a whitespace leaf.
func Ws(text string) syntax.Spec { return L(syntax.Whitespace, text) }

// Sp is a single space.
func Sp() syntax.Spec { return Ws(" ") }

// Id declares an identifier leaf.
func Id(name string) syntax.Spec { return L(syntax.Identifier, name) }

// Kw declares a keyword leaf.
func Kw(word string) syntax.Spec { return L(syntax.Keyword, word) }

// Lit declares a literal leaf.
func Lit(v string) syntax.Spec { return L(syntax.Literal, v) }

// EOL declares an end-of-line comment.
func EOL(text string) syntax.Spec { return L(syntax.EOLComment, text) }

// Punctuation leaves.
func Eq() syntax.Spec       { return L(syntax.Eq, "=") }
func Comma() syntax.Spec    { return L(syntax.Comma, ",") }
func Colon() syntax.Spec    { return L(syntax.Colon, ":") }
func LParen() syntax.Spec   { return L(syntax.LParen, "(") }
func RParen() syntax.Spec   { return L(syntax.RParen, ")") }
func LBracket() syntax.Spec { return L(syntax.LBracket, "[") }
func RBracket() syntax.Spec { return L(syntax.RBracket, "]") }
func LBrace() syntax.Spec   { return L(syntax.LBrace, "{") }
func RBrace() syntax.Spec   { return L(syntax.RBrace, "}") }
func LAngle() syntax.Spec   { return L(syntax.LAngle, "<") }
func RAngle() syntax.Spec   { return L(syntax.RAngle, ">") }

// Ref declares a reference expression to name.
func Ref(name string) syntax.Spec {
	return N(syntax.ReferenceExpr, Id(name))
}

// Op declares an operation reference wrapping an operator token.
func Op(kind syntax.Kind, text string) syntax.Spec {
	return N(syntax.OperationReference, L(kind, text))
}

// Build turns a declaration into a tree.
func Build(s syntax.Spec) *syntax.Tree {
	return syntax.FromSpec(s)
}

// Find returns the first node of the given kind in pre-order, failing the
// test when there is none.
func Find(t testing.TB, tree *syntax.Tree, kind syntax.Kind) syntax.NodeID {
	t.Helper()
	all := FindAll(tree, kind)
	if len(all) == 0 {
		t.Fatalf("no %s node in tree %q", kind, tree.Render())
	}
	return all[0]
}

// FindAll returns every node of the given kind in pre-order.
func FindAll(tree *syntax.Tree, kind syntax.Kind) []syntax.NodeID {
	var out []syntax.NodeID
	tree.Walk(tree.Root(), func(id syntax.NodeID) bool {
		if tree.Kind(id) == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}
