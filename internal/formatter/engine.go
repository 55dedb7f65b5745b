package formatter

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/syntax"
)

// Pass lifecycle states.
const (
	StateNotStarted = "not_started"
	StateVisiting   = "visiting"
	StateDone       = "done"
	StateAborted    = "aborted"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
	eventAbort  = "abort"
)

// ConsistencyError reports that a rule found the tree in a shape it cannot
// handle. It is a defect in the tree or the rule, never a user violation,
// and it aborts the pass.
type ConsistencyError struct {
	RuleID string
	Kind   syntax.Kind
	Offset int
	Err    error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("rule %s failed on %s at offset %d: %v", e.RuleID, e.Kind, e.Offset, e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }

// Engine runs rules over syntax trees.
type Engine struct {
	providers []Provider
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New returns an engine running the rules created by providers, in order.
func New(providers []Provider, opts ...Option) *Engine {
	e := &Engine{providers: slices.Clone(providers), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result holds the outcome of a pass.
type Result struct {
	Violations []Violation
}

// ByRule groups the violations by rule id.
func (r *Result) ByRule() map[string][]Violation {
	out := make(map[string][]Violation)
	for _, v := range r.Violations {
		out[v.RuleID] = append(out[v.RuleID], v)
	}
	return out
}

// Run performs a single pass over tree. See Pass.
func (e *Engine) Run(ctx context.Context, tree *syntax.Tree, props config.Properties, autoCorrect bool) (*Result, error) {
	return e.NewPass(tree, props, autoCorrect).Run(ctx)
}

// Pass is one traversal of one tree with fresh rule instances. It moves
// from not_started to visiting to done, or to aborted on the first error.
// A Pass cannot be reused.
type Pass struct {
	tree        *syntax.Tree
	props       config.Properties
	autoCorrect bool
	rules       []Rule
	dispatch    map[syntax.Kind][]Rule
	violations  []Violation
	logger      *zap.Logger
	fsm         *fsm.FSM
}

// NewPass prepares a pass over tree. Every pass instantiates its own rules.
func (e *Engine) NewPass(tree *syntax.Tree, props config.Properties, autoCorrect bool) *Pass {
	p := &Pass{
		tree:        tree,
		props:       props,
		autoCorrect: autoCorrect,
		logger:      e.logger,
	}
	for _, provide := range e.providers {
		p.rules = append(p.rules, provide())
	}
	p.fsm = fsm.NewFSM(
		StateNotStarted,
		fsm.Events{
			{Name: eventStart, Src: []string{StateNotStarted}, Dst: StateVisiting},
			{Name: eventFinish, Src: []string{StateVisiting}, Dst: StateDone},
			{Name: eventAbort, Src: []string{StateNotStarted, StateVisiting}, Dst: StateAborted},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, ev *fsm.Event) {
				p.logger.Debug("pass state changed",
					zap.String("from", ev.Src),
					zap.String("to", ev.Dst),
					zap.Int("violations", len(p.violations)))
			},
		},
	)
	return p
}

// State returns the current lifecycle state.
func (p *Pass) State() string {
	return p.fsm.Current()
}

// Run resolves the rule properties, visits every node in pre-order and
// returns the violations in emission order. Rules mutate the tree in place
// when the pass autocorrects.
func (p *Pass) Run(ctx context.Context) (*Result, error) {
	if p.State() != StateNotStarted {
		return nil, fmt.Errorf("pass is %s and cannot run again", p.State())
	}
	if p.tree == nil || p.tree.Root() == syntax.NoNode {
		return nil, errors.New("pass needs a non-empty tree")
	}

	if err := p.beforeFirstNode(); err != nil {
		return nil, p.abort(ctx, err)
	}
	if err := p.fsm.Event(ctx, eventStart); err != nil {
		return nil, err
	}

	if err := p.visit(p.tree.Root()); err != nil {
		return nil, p.abort(ctx, err)
	}
	if err := p.fsm.Event(ctx, eventFinish); err != nil {
		return nil, err
	}
	return &Result{Violations: p.violations}, nil
}

// beforeFirstNode configures every rule and builds the kind dispatch table.
func (p *Pass) beforeFirstNode() error {
	for _, r := range p.rules {
		if err := r.BeforeFirstNode(p.props.Only(r.Properties()...)); err != nil {
			return fmt.Errorf("configuring rule %s: %w", r.ID(), err)
		}
	}

	p.dispatch = make(map[syntax.Kind][]Rule)
	for _, kind := range syntax.Kinds() {
		for _, r := range p.rules {
			if kinds := r.Kinds(); len(kinds) == 0 || slices.Contains(kinds, kind) {
				p.dispatch[kind] = append(p.dispatch[kind], r)
			}
		}
	}
	return nil
}

func (p *Pass) abort(ctx context.Context, cause error) error {
	p.logger.Error("pass aborted", zap.Error(cause))
	if err := p.fsm.Event(ctx, eventAbort); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (p *Pass) visit(id syntax.NodeID) error {
	for _, r := range p.dispatch[p.tree.Kind(id)] {
		if err := p.call(r, id); err != nil {
			return err
		}
	}

	for child := p.tree.FirstChild(id); child != syntax.NoNode; child = p.tree.NextSibling(child, nil) {
		if err := p.visit(child); err != nil {
			return err
		}
		if p.tree.Parent(child) != id {
			return &ConsistencyError{
				Kind:   p.tree.Kind(child),
				Offset: p.tree.StartOffset(id),
				Err:    fmt.Errorf("%w: visited node was detached", syntax.ErrInconsistentTree),
			}
		}
	}
	return nil
}

// call runs a single rule hook. Errors and panics become a
// ConsistencyError.
func (p *Pass) call(r Rule, id syntax.NodeID) (err error) {
	kind := p.tree.Kind(id)
	offset := p.tree.StartOffset(id)
	defer func() {
		if rec := recover(); rec != nil {
			err = &ConsistencyError{RuleID: r.ID(), Kind: kind, Offset: offset, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	if err := r.BeforeVisitChildNodes(p.tree, id, p.autoCorrect, p.emitter(r)); err != nil {
		var ce *ConsistencyError
		if errors.As(err, &ce) {
			return err
		}
		return &ConsistencyError{RuleID: r.ID(), Kind: kind, Offset: offset, Err: err}
	}
	return nil
}

func (p *Pass) emitter(r Rule) EmitFunc {
	return func(offset int, message string, canBeAutoCorrected bool) {
		line, col := syntax.Position(p.tree.Render(), offset)
		p.violations = append(p.violations, Violation{
			RuleID:    r.ID(),
			Offset:    offset,
			Line:      line,
			Column:    col,
			Message:   message,
			Fixable:   canBeAutoCorrected,
			Corrected: p.autoCorrect && canBeAutoCorrected,
		})
	}
}
