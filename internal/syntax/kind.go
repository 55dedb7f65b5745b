// Package syntax provides the editable concrete syntax tree consumed by the
// formatting rules.
package syntax

import "fmt"

// Kind classifies a node of the concrete syntax tree by syntactic role.
type Kind int

const (
	// KindInvalid is the zero Kind and never appears in a valid tree.
	KindInvalid Kind = iota

	// Composite kinds.

	// File is the root of a source file.
	File
	// Class is a class declaration.
	Class
	// ClassBody is the braced body of a class.
	ClassBody
	// SupertypeList holds the entries after the colon of a class header.
	SupertypeList
	// SupertypeEntry is a single supertype, possibly a constructor call.
	SupertypeEntry
	// Fun is a function declaration.
	Fun
	// ParameterList is the parenthesized parameter list of a function.
	ParameterList
	// Parameter is a single function parameter.
	Parameter
	// Property is a val/var declaration.
	Property
	// Block is a statement block.
	Block
	// TypeReference is a written type.
	TypeReference
	// TypeProjection is an element of a type argument list.
	TypeProjection
	// TypeArgumentList is the angle bracketed list of type arguments.
	TypeArgumentList
	// ArgumentList is the parenthesized argument list of a call.
	ArgumentList
	// ValueArgument is a single argument in an argument list.
	ValueArgument
	// ValueArgumentName is the "name" part of a named argument.
	ValueArgumentName
	// LambdaExpression wraps a function literal used as a value.
	LambdaExpression
	// FunctionLiteral is the braced body of a lambda.
	FunctionLiteral
	// CollectionLiteral is a bracketed collection literal.
	CollectionLiteral
	// IndexList is the bracketed index list of an array access.
	IndexList
	// CallExpression is a function call.
	CallExpression
	// DotQualifiedExpr is a receiver.selector expression.
	DotQualifiedExpr
	// SafeAccessExpr is a receiver?.selector expression.
	SafeAccessExpr
	// ReferenceExpr is a plain name reference.
	ReferenceExpr
	// ArrayAccessExpr is an indexing expression.
	ArrayAccessExpr
	// BinaryExpr is an infix operator expression.
	BinaryExpr
	// BinaryWithTypeExpr is an "as" cast.
	BinaryWithTypeExpr
	// OperationReference wraps the operator token of a binary expression.
	OperationReference
	// IfExpr is an if expression.
	IfExpr
	// WhenExpr is a when expression.
	WhenExpr
	// TryExpr is a try expression.
	TryExpr
	// IsExpr is an "is" type check.
	IsExpr
	// PrefixExpr is a prefix operator expression.
	PrefixExpr
	// PostfixExpr is a postfix operator expression.
	PostfixExpr
	// ObjectLiteral is an anonymous object expression.
	ObjectLiteral
	// ReturnExpr is a return statement.
	ReturnExpr
	// StringTemplate is a quoted string with its parts.
	StringTemplate

	// Leaf kinds.

	// Whitespace is a run of spaces, tabs and line breaks.
	Whitespace
	// EOLComment is a "//" comment running to the end of the line.
	EOLComment
	// BlockComment is a "/* */" comment.
	BlockComment
	// KDoc is a documentation comment.
	KDoc
	// Comma is ",".
	Comma
	// LParen is "(".
	LParen
	// RParen is ")".
	RParen
	// LBracket is "[".
	LBracket
	// RBracket is "]".
	RBracket
	// LBrace is "{".
	LBrace
	// RBrace is "}".
	RBrace
	// LAngle is "<".
	LAngle
	// RAngle is ">".
	RAngle
	// Eq is "=".
	Eq
	// Colon is ":".
	Colon
	// Dot is ".".
	Dot
	// SafeAccess is "?.".
	SafeAccess
	// Arrow is "->".
	Arrow
	// Mul is "*", also used as the spread operator.
	Mul
	// Elvis is "?:".
	Elvis
	// Operator is any other operator token.
	Operator
	// Identifier is a name.
	Identifier
	// Keyword is a reserved word.
	Keyword
	// Literal is a numeric, boolean, char or null literal.
	Literal
	// StringPart is literal text inside a string template.
	StringPart
	// Quote is a string delimiter.
	Quote
	// Semicolon is ";".
	Semicolon

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:        "Invalid",
	File:               "File",
	Class:              "Class",
	ClassBody:          "ClassBody",
	SupertypeList:      "SupertypeList",
	SupertypeEntry:     "SupertypeEntry",
	Fun:                "Fun",
	ParameterList:      "ParameterList",
	Parameter:          "Parameter",
	Property:           "Property",
	Block:              "Block",
	TypeReference:      "TypeReference",
	TypeProjection:     "TypeProjection",
	TypeArgumentList:   "TypeArgumentList",
	ArgumentList:       "ArgumentList",
	ValueArgument:      "ValueArgument",
	ValueArgumentName:  "ValueArgumentName",
	LambdaExpression:   "LambdaExpression",
	FunctionLiteral:    "FunctionLiteral",
	CollectionLiteral:  "CollectionLiteral",
	IndexList:          "IndexList",
	CallExpression:     "CallExpression",
	DotQualifiedExpr:   "DotQualifiedExpr",
	SafeAccessExpr:     "SafeAccessExpr",
	ReferenceExpr:      "ReferenceExpr",
	ArrayAccessExpr:    "ArrayAccessExpr",
	BinaryExpr:         "BinaryExpr",
	BinaryWithTypeExpr: "BinaryWithTypeExpr",
	OperationReference: "OperationReference",
	IfExpr:             "IfExpr",
	WhenExpr:           "WhenExpr",
	TryExpr:            "TryExpr",
	IsExpr:             "IsExpr",
	PrefixExpr:         "PrefixExpr",
	PostfixExpr:        "PostfixExpr",
	ObjectLiteral:      "ObjectLiteral",
	ReturnExpr:         "ReturnExpr",
	StringTemplate:     "StringTemplate",
	Whitespace:         "Whitespace",
	EOLComment:         "EOLComment",
	BlockComment:       "BlockComment",
	KDoc:               "KDoc",
	Comma:              "Comma",
	LParen:             "LParen",
	RParen:             "RParen",
	LBracket:           "LBracket",
	RBracket:           "RBracket",
	LBrace:             "LBrace",
	RBrace:             "RBrace",
	LAngle:             "LAngle",
	RAngle:             "RAngle",
	Eq:                 "Eq",
	Colon:              "Colon",
	Dot:                "Dot",
	SafeAccess:         "SafeAccess",
	Arrow:              "Arrow",
	Mul:                "Mul",
	Elvis:              "Elvis",
	Operator:           "Operator",
	Identifier:         "Identifier",
	Keyword:            "Keyword",
	Literal:            "Literal",
	StringPart:         "StringPart",
	Quote:              "Quote",
	Semicolon:          "Semicolon",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// String returns the name used for the kind in tree dumps.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	k, ok := kindsByName[name]
	if !ok || k == KindInvalid {
		return KindInvalid, fmt.Errorf("unknown node kind %q", name)
	}
	return k, nil
}
