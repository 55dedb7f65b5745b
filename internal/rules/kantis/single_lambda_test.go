package kantis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/formatter"
	"github.com/donaldgifford/kantfmt/internal/syntax"
	tu "github.com/donaldgifford/kantfmt/internal/testutil"
)

// {\n        bar()\n    }
func indentedLambda() syntax.Spec {
	return arg(lambda(tu.Ws("\n        "), call("bar"), tu.Ws("\n    ")))
}

func TestSingleLambda(t *testing.T) {
	runCases(t, NewSingleLambda, []ruleCase{
		{
			name:    "lambda on its own lines",
			tree:    tu.N(syntax.File, call("foo", tu.Ws("\n    "), indentedLambda(), tu.Ws("\n"))),
			offsets: []int{9, 30},
			want:    "foo({\n    bar()\n})",
		},
		{
			name:    "single line lambda on its own line",
			tree:    tu.N(syntax.File, call("foo", tu.Ws("\n    "), arg(lambda(tu.Sp(), call("bar"), tu.Sp())), tu.Ws("\n"))),
			offsets: []int{9, 18},
			want:    "foo({ bar() })",
		},
		{
			name: "comment after opening parenthesis",
			tree: tu.N(syntax.File, call("foo",
				tu.Sp(), tu.EOL("// comment"), tu.Ws("\n    "), indentedLambda(), tu.Ws("\n"),
			)),
			offsets: []int{20, 41},
			want:    "foo({ // comment\n    bar()\n})",
		},
		{
			name: "comment before closing parenthesis",
			tree: tu.N(syntax.File, call("foo",
				arg(lambda(tu.Ws("\n    "), call("bar"), tu.Ws("\n"))), tu.Sp(), tu.EOL("// comment"), tu.Ws("\n"),
			)),
			offsets: []int{17},
			want:    "foo({\n    bar()\n}) // comment",
		},
		{
			name:    "blank after opening parenthesis",
			tree:    tu.N(syntax.File, call("foo", tu.Sp(), arg(lambda(tu.Sp(), call("bar"), tu.Sp())))),
			offsets: []int{5},
			want:    "foo({ bar() })",
		},
		{
			name: "already hugging",
			tree: tu.N(syntax.File, call("foo", arg(lambda(tu.Ws("\n    "), call("bar"), tu.Ws("\n"))))),
		},
		{
			name: "not a lambda",
			tree: tu.N(syntax.File, call("foo", tu.Ws("\n    "), arg(tu.Lit("1")), tu.Ws("\n"))),
		},
		{
			name: "two arguments",
			tree: tu.N(syntax.File, call("foo",
				tu.Ws("\n    "), arg(tu.Lit("1")), tu.Comma(), tu.Sp(), arg(lambda()), tu.Ws("\n"),
			)),
		},
	})
}

func TestSingleLambdaTabs(t *testing.T) {
	tabs := map[config.Key]string{config.IndentStyle: "tab", config.IndentSize: "4"}
	tree := tu.Build(tu.N(syntax.File,
		tu.Ws("\t"),
		call("foo", tu.Ws("\n\t\t"), arg(lambda(tu.Ws("\n\t\t\t"), call("bar"), tu.Ws("\n\t\t"))), tu.Ws("\n\t")),
	))

	_, err := run(t, NewSingleLambda, tree, tabs, true)
	require.NoError(t, err)
	assert.Equal(t, "\tfoo({\n\t\tbar()\n\t})", tree.Render())
}

func TestSingleLambdaMessages(t *testing.T) {
	tree := tu.Build(tu.N(syntax.File, call("foo", tu.Ws("\n    "), indentedLambda(), tu.Ws("\n"))))
	vs, err := run(t, NewSingleLambda, tree, nil, false)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, msgLambdaStart, vs[0].Message)
	assert.Equal(t, msgLambdaEnd, vs[1].Message)
	assert.Equal(t, 4, vs[1].Line)
	assert.Equal(t, 6, vs[1].Column)
}

func TestSingleLambdaWithoutBrace(t *testing.T) {
	broken := tu.N(syntax.ValueArgument, tu.N(syntax.LambdaExpression, tu.N(syntax.FunctionLiteral, tu.Id("x"))))
	tree := tu.Build(tu.N(syntax.File, call("foo", tu.Ws("\n"), broken)))

	_, err := run(t, NewSingleLambda, tree, nil, true)
	var cerr *formatter.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, syntax.ErrInconsistentTree)
}
