package formatter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/formatter"
	"github.com/donaldgifford/kantfmt/internal/syntax"
	tu "github.com/donaldgifford/kantfmt/internal/testutil"
)

// fakeRule records visits and delegates node handling to visitFn.
type fakeRule struct {
	id      string
	keys    []config.Key
	kinds   []syntax.Kind
	props   config.Properties
	visited *[]string
	visitFn func(t *syntax.Tree, id syntax.NodeID, autoCorrect bool, emit formatter.EmitFunc) error
	readKey config.Key
}

func (r *fakeRule) ID() string               { return r.id }
func (r *fakeRule) Properties() []config.Key { return r.keys }
func (r *fakeRule) Kinds() []syntax.Kind     { return r.kinds }

func (r *fakeRule) BeforeFirstNode(props config.Properties) error {
	r.props = props
	if r.readKey != "" {
		_, err := props.String(r.readKey)
		return err
	}
	return nil
}

func (r *fakeRule) BeforeVisitChildNodes(t *syntax.Tree, id syntax.NodeID, autoCorrect bool, emit formatter.EmitFunc) error {
	if r.visited != nil {
		*r.visited = append(*r.visited, r.id+"@"+t.Kind(id).String())
	}
	if r.visitFn != nil {
		return r.visitFn(t, id, autoCorrect, emit)
	}
	return nil
}

func provide(r *fakeRule) formatter.Provider {
	return func() formatter.Rule {
		clone := *r
		return &clone
	}
}

// [1,\n2]
func list() *syntax.Tree {
	return tu.Build(tu.N(syntax.File,
		tu.N(syntax.CollectionLiteral, tu.LBracket(), tu.Lit("1"), tu.Comma(), tu.Ws("\n"), tu.Lit("2"), tu.RBracket()),
	))
}

func props() config.Properties {
	return config.FromConfig(config.DefaultConfig())
}

func TestDispatchByKindInRegistrationOrder(t *testing.T) {
	var visited []string
	engine := formatter.New([]formatter.Provider{
		provide(&fakeRule{id: "t:list", kinds: []syntax.Kind{syntax.CollectionLiteral}, visited: &visited}),
		provide(&fakeRule{id: "t:all", visited: &visited}),
		provide(&fakeRule{id: "t:lit", kinds: []syntax.Kind{syntax.Literal, syntax.CollectionLiteral}, visited: &visited}),
	}, formatter.WithLogger(zaptest.NewLogger(t)))

	res, err := engine.Run(context.Background(), list(), props(), false)
	require.NoError(t, err)
	assert.Empty(t, res.Violations)

	assert.Equal(t, []string{
		"t:all@File",
		"t:list@CollectionLiteral", "t:all@CollectionLiteral", "t:lit@CollectionLiteral",
		"t:all@LBracket",
		"t:all@Literal", "t:lit@Literal",
		"t:all@Comma",
		"t:all@Whitespace",
		"t:all@Literal", "t:lit@Literal",
		"t:all@RBracket",
	}, visited)
}

func TestFreshRulesPerPass(t *testing.T) {
	created := 0
	engine := formatter.New([]formatter.Provider{func() formatter.Rule {
		created++
		return &fakeRule{id: "t:count"}
	}})

	for range 3 {
		_, err := engine.Run(context.Background(), list(), props(), false)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, created)
}

func TestPropertiesAreRestrictedToDeclaredKeys(t *testing.T) {
	engine := formatter.New([]formatter.Provider{
		provide(&fakeRule{id: "t:ok", keys: []config.Key{config.MaxLineLength}, readKey: config.MaxLineLength}),
	})
	_, err := engine.Run(context.Background(), list(), props(), false)
	require.NoError(t, err)

	engine = formatter.New([]formatter.Provider{
		provide(&fakeRule{id: "t:sneaky", keys: []config.Key{config.MaxLineLength}, readKey: config.IndentStyle}),
	})
	pass := engine.NewPass(list(), props(), false)
	_, err = pass.Run(context.Background())
	require.ErrorIs(t, err, config.ErrUndeclaredProperty)
	assert.Contains(t, err.Error(), "t:sneaky")
	assert.Equal(t, formatter.StateAborted, pass.State())
}

func TestEmitComputesPosition(t *testing.T) {
	rule := &fakeRule{
		id:    "t:emit",
		kinds: []syntax.Kind{syntax.Literal},
		visitFn: func(t *syntax.Tree, id syntax.NodeID, _ bool, emit formatter.EmitFunc) error {
			emit(t.StartOffset(id), "literal "+t.Text(id), t.Text(id) == "2")
			return nil
		},
	}

	for _, autoCorrect := range []bool{false, true} {
		engine := formatter.New([]formatter.Provider{provide(rule)})
		res, err := engine.Run(context.Background(), list(), props(), autoCorrect)
		require.NoError(t, err)

		assert.Equal(t, []formatter.Violation{
			{RuleID: "t:emit", Offset: 1, Line: 1, Column: 2, Message: "literal 1"},
			{RuleID: "t:emit", Offset: 4, Line: 2, Column: 1, Message: "literal 2", Fixable: true, Corrected: autoCorrect},
		}, res.Violations)
		assert.Len(t, res.ByRule()["t:emit"], 2)
	}
}

func TestRuleErrorAbortsPass(t *testing.T) {
	tests := []struct {
		name    string
		visitFn func(*syntax.Tree, syntax.NodeID, bool, formatter.EmitFunc) error
		wantIs  error
	}{
		{
			name: "error",
			visitFn: func(*syntax.Tree, syntax.NodeID, bool, formatter.EmitFunc) error {
				return syntax.ErrInconsistentTree
			},
			wantIs: syntax.ErrInconsistentTree,
		},
		{
			name: "panic",
			visitFn: func(*syntax.Tree, syntax.NodeID, bool, formatter.EmitFunc) error {
				panic("boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := formatter.New([]formatter.Provider{
				provide(&fakeRule{id: "t:broken", kinds: []syntax.Kind{syntax.CollectionLiteral}, visitFn: tt.visitFn}),
			})
			pass := engine.NewPass(list(), props(), true)
			res, err := pass.Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, res)

			var ce *formatter.ConsistencyError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "t:broken", ce.RuleID)
			assert.Equal(t, syntax.CollectionLiteral, ce.Kind)
			assert.Equal(t, 0, ce.Offset)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Equal(t, formatter.StateAborted, pass.State())
		})
	}
}

func TestInsertedNodesAheadAreVisited(t *testing.T) {
	var visited []string
	engine := formatter.New([]formatter.Provider{
		provide(&fakeRule{
			id:    "t:insert",
			kinds: []syntax.Kind{syntax.CollectionLiteral},
			visitFn: func(t *syntax.Tree, id syntax.NodeID, autoCorrect bool, _ formatter.EmitFunc) error {
				if !autoCorrect {
					return nil
				}
				return t.InsertChild(id, t.NewLeaf(syntax.Comma, ","), t.LastChild(id))
			},
		}),
		provide(&fakeRule{id: "t:comma", kinds: []syntax.Kind{syntax.Comma}, visited: &visited}),
	})

	tree := list()
	_, err := engine.Run(context.Background(), tree, props(), true)
	require.NoError(t, err)
	assert.Equal(t, "[1,\n2,]", tree.Render())
	assert.Len(t, visited, 2)
}

func TestDetachingVisitedNodeIsInconsistent(t *testing.T) {
	engine := formatter.New([]formatter.Provider{
		provide(&fakeRule{
			id:    "t:detach",
			kinds: []syntax.Kind{syntax.Comma},
			visitFn: func(t *syntax.Tree, id syntax.NodeID, _ bool, _ formatter.EmitFunc) error {
				return t.Detach(id)
			},
		}),
	})

	_, err := engine.Run(context.Background(), list(), props(), true)
	require.ErrorIs(t, err, syntax.ErrInconsistentTree)
}

func TestPassRunsOnce(t *testing.T) {
	pass := formatter.New(nil).NewPass(list(), props(), false)
	_, err := pass.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, formatter.StateDone, pass.State())

	_, err = pass.Run(context.Background())
	assert.Error(t, err)
}

func TestRunRejectsEmptyTree(t *testing.T) {
	_, err := formatter.New(nil).Run(context.Background(), syntax.New(), props(), false)
	assert.Error(t, err)
}
